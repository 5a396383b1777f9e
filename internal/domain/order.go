package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

// Placed -> Confirmed is the only transition the order flow performs.
// Fulfilled and Cancelled exist in the vocabulary but have no transition
// logic here.
const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusFulfilled OrderStatus = "Fulfilled"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order is created and confirmed inside a single transaction. IdempotencyKey,
// when present, is unique across all orders so a retried request maps back to
// the original row.
type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID       uuid.UUID       `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Parent         *Parent         `gorm:"foreignKey:ParentID" json:"-"`
	StudentID      uuid.UUID       `gorm:"type:uuid;not null;index;column:student_id" json:"student_id"`
	Student        *Student        `gorm:"foreignKey:StudentID" json:"-"`
	CanteenID      uuid.UUID       `gorm:"type:uuid;not null;index;column:canteen_id" json:"canteen_id"`
	Canteen        *Canteen        `gorm:"foreignKey:CanteenID" json:"-"`
	FulfilmentDate time.Time       `gorm:"type:date;not null;column:fulfilment_date" json:"fulfilment_date"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	Status         OrderStatus     `gorm:"type:varchar(16);not null;column:status" json:"status"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(18,2);not null;column:total_amount" json:"total_amount"`
	IdempotencyKey *string         `gorm:"uniqueIndex;column:idempotency_key" json:"idempotency_key,omitempty"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// Confirm moves a Placed order to Confirmed. A repeated confirm is rejected,
// not silently accepted.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPlaced {
		return fmt.Errorf("%w: only placed orders can be confirmed", ErrInvalidStateTransition)
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// CalculateTotal recomputes the total from the items. Pure; the persisted
// TotalAmount is fixed at creation and this exists for verification.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderItem snapshots the unit price at order time; later menu price changes
// do not touch committed orders. Position preserves submission order.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index;column:order_id" json:"order_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index;column:menu_item_id" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID" json:"-"`
	Quantity   int             `gorm:"not null;column:quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(18,2);not null;column:unit_price" json:"unit_price"`
	Position   int             `gorm:"not null;default:0;column:position" json:"position"`
}

func (OrderItem) TableName() string {
	return "order_item"
}
