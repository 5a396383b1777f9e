package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student belongs to exactly one parent and carries at most one declared
// allergen, matched case-insensitively against menu item tags.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	ParentID  uuid.UUID `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Parent    *Parent   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Allergen  *string   `gorm:"column:allergen" json:"allergen,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Student) TableName() string {
	return "student"
}
