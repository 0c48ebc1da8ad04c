// Package postgres provides the GORM-based Unit of Work and schema migrations
// for the dispatch service.
//
// A unit of work wraps one database transaction. Every request that changes
// state creates its own instance, begins it, works through the repositories it
// hands out and commits. Repositories obtained before Begin run on the plain
// connection pool.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
//	if err != nil {
//	    return err
//	}
//	// mutate c ...
//	if err := uow.CourierRepository().Update(ctx, c); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is
// ignored by the deferred call above.
//
// Concurrency:
//   - A UnitOfWork instance is not safe for concurrent use
//   - Requests touching the same courier are serialized by the row lock taken
//     in CourierRepository.GetForUpdate
//   - Pool orders are claimed with a conditional update; losing the race
//     surfaces as errs.ErrConflict
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	Kind      string
	ID        int64
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, logger)
//
// Committed aggregates are logged at debug level. A nil logger discards them.
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GormUnitOfWorkFactory{
		db:     db,
		logger: logger.With("component", "unit_of_work"),
	}
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		logger:  f.logger,
		tracked: make(map[trackingKey]int),
	}
}

type trackingKey struct {
	kind string
	id   int64
}

// GormUnitOfWork coordinates a database transaction and records which
// aggregates were written inside it. An aggregate written twice is recorded
// once, with its latest state.
type GormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	logger *slog.Logger

	tracked    map[trackingKey]int
	aggregates []TrackedAggregate
}

// Begin starts the transaction. Calling Begin again while a transaction is
// open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent, logs the aggregates
// written inside it and starts tracking afresh.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil && len(uow.aggregates) > 0 {
		uow.logger.LogAttrs(ctx, slog.LevelDebug, "Aggregates committed",
			slog.Any("aggregates", uow.trackedRefs()))
	}
	uow.resetTracking()
	return err
}

// Rollback discards the transaction's changes and forgets tracked aggregates.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.resetTracking()
	return err
}

// CourierRepository returns a courier repository bound to the open
// transaction, or to the connection pool when none is open.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the open transaction,
// or to the connection pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate records that a repository wrote the aggregate.
func (uow *GormUnitOfWork) TrackAggregate(kind string, id int64, aggregate any) {
	key := trackingKey{kind: kind, id: id}
	if i, ok := uow.tracked[key]; ok {
		uow.aggregates[i].Aggregate = aggregate
		return
	}

	uow.tracked[key] = len(uow.aggregates)
	uow.aggregates = append(uow.aggregates, TrackedAggregate{
		Kind:      kind,
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written so far, in first-write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.aggregates))
	copy(out, uow.aggregates)
	return out
}

// trackedRefs renders tracked aggregates as "kind:id".
func (uow *GormUnitOfWork) trackedRefs() []string {
	refs := make([]string, 0, len(uow.aggregates))
	for _, a := range uow.aggregates {
		refs = append(refs, fmt.Sprintf("%s:%d", a.Kind, a.ID))
	}
	return refs
}

func (uow *GormUnitOfWork) resetTracking() {
	uow.tracked = make(map[trackingKey]int)
	uow.aggregates = nil
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
