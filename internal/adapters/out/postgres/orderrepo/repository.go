package orderrepo

import (
	"context"
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/ports"
	"quickdrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllClaimable retrieves every order still open for a claim.
func (r *GormOrderRepository) GetAllClaimable(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND assigned_partner IS NULL", order.Placed.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllByPartner retrieves every order assigned to the given partner.
func (r *GormOrderRepository) GetAllByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "assigned_partner = ?", partnerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// UpdateIf persists the aggregate only if the stored row still satisfies the
// precondition. Predicate and write travel in one UPDATE statement, so two
// racing writers resolve on the database's row lock: the first one through
// matches and writes, the second matches nothing.
func (r *GormOrderRepository) UpdateIf(
	ctx context.Context,
	aggregate *order.Order,
	expected ports.Precondition,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	tx := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.Status.String())
	if expected.RequireUnassigned {
		tx = tx.Where("assigned_partner IS NULL")
	}
	if expected.AssignedPartner != nil {
		tx = tx.Where("assigned_partner = ?", expected.AssignedPartner.Bytes())
	}

	// Select("*") forces zero values (cleared flags, nil partner) to be
	// written as well.
	result := tx.Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
