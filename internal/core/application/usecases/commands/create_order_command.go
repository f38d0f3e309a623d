package commands

import (
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrItemsAreRequired        = errors.New("at least one item is required")
	ErrTotalIsInvalid          = errors.New("total must be greater than 0")
)

// CreateOrderCommand represents a customer request to place a new order.
// Encapsulates the order contents, the charged total and the delivery address.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, "jane@example.com", items, 42.50, address)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, bus)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	customerEmail   string
	items           []order.Item
	total           float64
	deliveryAddress order.Address

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both IDs are valid, the email and items are present, and the
// total is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	customerEmail string,
	items []order.Item,
	total float64,
	deliveryAddress order.Address,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setCustomerEmail(customerEmail),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerEmail returns the contact email of the ordering customer.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Total returns the charged order total.
func (c CreateOrderCommand) Total() float64 {
	return c.total
}

// DeliveryAddress returns the destination address.
func (c CreateOrderCommand) DeliveryAddress() order.Address {
	return c.deliveryAddress
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setTotal(total float64) error {
	if total <= 0 {
		return ErrTotalIsInvalid
	}

	c.total = total
	return nil
}
