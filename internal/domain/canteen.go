package domain

import (
	"time"

	"github.com/google/uuid"
)

// Canteen owns a weekly schedule (one entry per weekday at most) and a menu.
// A weekday without a schedule entry means the canteen is closed that day.
type Canteen struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string            `gorm:"not null;column:name" json:"name"`
	Schedules []CanteenSchedule `gorm:"foreignKey:CanteenID" json:"schedules,omitempty"`
	MenuItems []MenuItem        `gorm:"foreignKey:CanteenID" json:"menu_items,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

func (Canteen) TableName() string {
	return "canteen"
}

func (c *Canteen) IsOpenOnDay(day time.Weekday) bool {
	for _, s := range c.Schedules {
		if s.DayOfWeek == day {
			return true
		}
	}
	return false
}

// CutoffForDay returns the ordering cutoff for the given weekday as a
// duration since midnight, or nil when the day has no schedule entry or the
// entry carries no cutoff.
func (c *Canteen) CutoffForDay(day time.Weekday) *time.Duration {
	for _, s := range c.Schedules {
		if s.DayOfWeek == day {
			return s.CutoffTime
		}
	}
	return nil
}

// CanteenSchedule is one weekday of opening, unique per canteen and day.
// CutoffTime is stored as nanoseconds since midnight.
type CanteenSchedule struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CanteenID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_canteen_schedule_day;column:canteen_id" json:"canteen_id"`
	DayOfWeek  time.Weekday   `gorm:"not null;uniqueIndex:idx_canteen_schedule_day;column:day_of_week" json:"day_of_week"`
	CutoffTime *time.Duration `gorm:"column:cutoff_time" json:"cutoff_time,omitempty"`
}

func (CanteenSchedule) TableName() string {
	return "canteen_schedule"
}
