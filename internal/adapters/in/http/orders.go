package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ordersCreatedResponse struct {
	Orders []idResponse `json:"orders"`
}

type assignResponse struct {
	Orders     []idResponse `json:"orders"`
	AssignTime string       `json:"assign_time,omitempty"`
}

type completeResponse struct {
	OrderID int64 `json:"order_id"`
}

// orderEntry keeps the weight as the literal sent so its precision can be
// checked on the text.
type orderEntry struct {
	OrderID       int64           `json:"order_id"`
	Weight        json.RawMessage `json:"weight"`
	Region        int             `json:"region"`
	DeliveryHours []string        `json:"delivery_hours"`
}

type completeRequest struct {
	CourierID    *int64  `json:"courier_id"`
	OrderID      *int64  `json:"order_id"`
	CompleteTime *string `json:"complete_time"`
}

// CreateOrders handles POST /orders.
func (s *Server) CreateOrders(c echo.Context) error {
	entries, err := decodeBatch(c)
	if err != nil {
		return s.writeError(c, err)
	}

	drafts := make([]commands.OrderDraft, len(entries))
	rawIDs := make([]json.RawMessage, len(entries))
	for i, raw := range entries {
		drafts[i], rawIDs[i] = newOrderDraft(raw)
	}

	cmd, err := commands.NewCreateOrdersCommand(drafts)
	if err != nil {
		return s.writeError(c, err)
	}

	ids, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		var rejected *errs.RejectedBatchError
		if errors.As(err, &rejected) {
			return s.writeRejectedBatch(c, rejected, rawIDs)
		}
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, ordersCreatedResponse{Orders: newIDResponses(ids)})
}

// AssignOrders handles POST /orders/assign. The body must hold courier_id
// and nothing else.
func (s *Server) AssignOrders(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return s.writeError(c, err)
	}

	fields, err := decodeObject(body)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	rawID, ok := fields["courier_id"]
	if !ok {
		return s.writeError(c, errs.NewValueIsRequiredError("courier_id"))
	}
	if len(fields) != 1 {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", errUnknownField))
	}

	var courierID int64
	if err = json.Unmarshal(rawID, &courierID); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("courier_id", err))
	}

	cmd, err := commands.NewAssignOrdersCommand(courierID)
	if err != nil {
		return s.writeError(c, err)
	}

	assignment, err := s.handlers.AssignOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	response := assignResponse{Orders: newIDResponses(assignment.OrderIDs)}
	if len(assignment.OrderIDs) > 0 {
		response.AssignTime = kernel.FormatTimestamp(assignment.AssignTime)
	}
	return c.JSON(http.StatusOK, response)
}

// CompleteOrder handles POST /orders/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req completeRequest
	if err = json.Unmarshal(body, &req); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	switch {
	case req.CourierID == nil:
		return s.writeError(c, errs.NewValueIsRequiredError("courier_id"))
	case req.OrderID == nil:
		return s.writeError(c, errs.NewValueIsRequiredError("order_id"))
	case req.CompleteTime == nil:
		return s.writeError(c, errs.NewValueIsRequiredError("complete_time"))
	}

	cmd, err := commands.NewCompleteOrderCommand(*req.CourierID, *req.OrderID, *req.CompleteTime)
	if err != nil {
		return s.writeError(c, err)
	}

	orderID, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, completeResponse{OrderID: orderID})
}

func newOrderDraft(raw json.RawMessage) (commands.OrderDraft, json.RawMessage) {
	rawID, id := entryID(raw, "order_id")
	draft := commands.OrderDraft{ID: id}

	if err := requireFields(raw, "order_id", "weight", "region", "delivery_hours"); err != nil {
		draft.Malformed = malformed("orders", err)
		return draft, rawID
	}

	var entry orderEntry
	if err := decodeStrict(raw, &entry); err != nil {
		draft.Malformed = malformed("orders", err)
		return draft, rawID
	}

	draft.Weight = string(entry.Weight)
	draft.Region = entry.Region
	draft.DeliveryHours = entry.DeliveryHours
	return draft, rawID
}
