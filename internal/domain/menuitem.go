package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MenuItem belongs to exactly one canteen. DailyStockCount nil means
// unlimited stock; when bounded it never goes negative. Version backs the
// optimistic lock on stock updates.
type MenuItem struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string                      `gorm:"not null;column:name" json:"name"`
	Price           decimal.Decimal             `gorm:"type:numeric(18,2);not null;column:price" json:"price"`
	CanteenID       uuid.UUID                   `gorm:"type:uuid;not null;index;column:canteen_id" json:"canteen_id"`
	DailyStockCount *int                        `gorm:"column:daily_stock_count" json:"daily_stock_count,omitempty"`
	AllergenTags    datatypes.JSONSlice[string] `gorm:"column:allergen_tags" json:"allergen_tags"`
	Version         int                         `gorm:"not null;default:0;column:version" json:"-"`
	CreatedAt       time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_item"
}

// HasAllergen reports case-insensitive membership of tag in AllergenTags.
func (m *MenuItem) HasAllergen(tag string) bool {
	for _, t := range m.AllergenTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (m *MenuItem) IsInStock(quantity int) bool {
	if m.DailyStockCount == nil {
		return true
	}
	return *m.DailyStockCount >= quantity
}

// DecrementStock reduces the remaining stock. No-op for unlimited items.
func (m *MenuItem) DecrementStock(quantity int) error {
	if m.DailyStockCount == nil {
		return nil
	}
	if *m.DailyStockCount < quantity {
		return NewValidationError(CodeInsufficientStock, fmt.Sprintf("insufficient stock for menu item %s", m.Name))
	}
	remaining := *m.DailyStockCount - quantity
	m.DailyStockCount = &remaining
	return nil
}
