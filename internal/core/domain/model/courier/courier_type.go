package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Type is the courier's means of transport. It determines carrying capacity
// and the earnings coefficient. The numeric values are the persisted ids of
// the courier_types reference table.
type Type int

const (
	UnknownType Type = iota
	Foot
	Bike
	Car
)

type typeSpec struct {
	name        string
	capacity    decimal.Decimal
	coefficient int64
}

func getTypeSpecs() map[Type]typeSpec {
	//nolint:exhaustive // UnknownType has no spec
	return map[Type]typeSpec{
		Foot: {name: "foot", capacity: decimal.NewFromInt(10), coefficient: 2},
		Bike: {name: "bike", capacity: decimal.NewFromInt(15), coefficient: 5},
		Car:  {name: "car", capacity: decimal.NewFromInt(50), coefficient: 9},
	}
}

// AllTypes lists the known types in id order.
func AllTypes() []Type {
	return []Type{Foot, Bike, Car}
}

// ParseType resolves the wire name ("foot", "bike", "car").
func ParseType(name string) (Type, error) {
	for t, spec := range getTypeSpecs() {
		if spec.name == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"courier_type", fmt.Errorf("%q is not a known courier type", name))
}

func (t Type) Validate() error {
	if _, ok := getTypeSpecs()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courier_type", fmt.Errorf("%d is not a valid courier type", t))
	}
	return nil
}

func (t Type) String() string {
	if spec, ok := getTypeSpecs()[t]; ok {
		return spec.name
	}
	return "unknown"
}

// Capacity is the maximum total weight of incomplete orders in one batch.
func (t Type) Capacity() decimal.Decimal {
	return getTypeSpecs()[t].capacity
}

// Coefficient multiplies the base payment credited when a batch is drained.
func (t Type) Coefficient() int64 {
	return getTypeSpecs()[t].coefficient
}
