// Package orderrepo implements order persistence on PostgreSQL via GORM.
// It maps the Order aggregate to a single flat row; line items travel as a
// JSON column and each lifecycle status gets its own timestamp column so the
// timeline can be queried without unpacking anything.
package orderrepo

import (
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	CustomerEmail string     `gorm:"type:varchar(255)"`
	Items         []ItemDTO  `gorm:"serializer:json;type:jsonb"`
	Total         float64
	Address       AddressDTO `gorm:"embedded"`

	Status          string     `gorm:"type:varchar(16);index"`
	AssignedPartner *uuid.UUID `gorm:"type:uuid;index"`
	LockOwner       *uuid.UUID `gorm:"type:uuid"`
	Locked          bool

	PlacedAt    *time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the JSON items column.
type ItemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// AddressDTO holds the delivery address columns embedded in the order row.
type AddressDTO struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(64)"`
	ZipCode string `gorm:"type:varchar(16)"`
	Phone   string `gorm:"type:varchar(32)"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	address := aggregate.DeliveryAddress()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerEmail: aggregate.CustomerEmail(),
		Items:         items,
		Total:         aggregate.Total(),
		Address: AddressDTO{
			Street:  address.Street,
			City:    address.City,
			State:   address.State,
			ZipCode: address.ZipCode,
			Phone:   address.Phone,
		},
		Status:          aggregate.Status().String(),
		AssignedPartner: uuidPtr(aggregate.AssignedPartner()),
		LockOwner:       uuidPtr(aggregate.LockOwner()),
		Locked:          aggregate.IsLocked(),
		PlacedAt:        reachedPtr(aggregate, order.Placed),
		AcceptedAt:      reachedPtr(aggregate, order.Accepted),
		PickedUpAt:      reachedPtr(aggregate, order.PickedUp),
		InTransitAt:     reachedPtr(aggregate, order.InTransit),
		DeliveredAt:     reachedPtr(aggregate, order.Delivered),
		CancelledAt:     reachedPtr(aggregate, order.Cancelled),
	}
}

// toDomain converts a database DTO back to an order domain aggregate via
// RestoreOrder, which re-validates the persisted state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	assignedPartner, err := kernelUUIDPtr(dto.AssignedPartner)
	if err != nil {
		return nil, err
	}
	lockOwner, err := kernelUUIDPtr(dto.LockOwner)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	timestamps := make(map[order.Status]time.Time)
	collectTimestamp(timestamps, order.Placed, dto.PlacedAt)
	collectTimestamp(timestamps, order.Accepted, dto.AcceptedAt)
	collectTimestamp(timestamps, order.PickedUp, dto.PickedUpAt)
	collectTimestamp(timestamps, order.InTransit, dto.InTransitAt)
	collectTimestamp(timestamps, order.Delivered, dto.DeliveredAt)
	collectTimestamp(timestamps, order.Cancelled, dto.CancelledAt)

	return order.RestoreOrder(
		id,
		customerID,
		dto.CustomerEmail,
		items,
		dto.Total,
		order.Address{
			Street:  dto.Address.Street,
			City:    dto.Address.City,
			State:   dto.Address.State,
			ZipCode: dto.Address.ZipCode,
			Phone:   dto.Address.Phone,
		},
		status,
		assignedPartner,
		lockOwner,
		dto.Locked,
		timestamps,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func reachedPtr(aggregate *order.Order, status order.Status) *time.Time {
	if at, ok := aggregate.ReachedAt(status); ok {
		return &at
	}
	return nil
}

func collectTimestamp(dst map[order.Status]time.Time, status order.Status, at *time.Time) {
	if at != nil {
		dst[status] = *at
	}
}
