package db

import (
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/lunchline/canteen-backend/internal/domain"
  "github.com/lunchline/canteen-backend/internal/platform/logger"
)

func intPtr(v int) *int { return &v }

func durationPtr(d time.Duration) *time.Duration { return &d }

// Seed loads the demo data set. Skips silently when parents already exist so
// restarts do not duplicate rows.
func Seed(gormDB *gorm.DB, log *logger.Logger) error {
  var parentCount int64
  if err := gormDB.Model(&domain.Parent{}).Count(&parentCount).Error; err != nil {
    return err
  }
  if parentCount > 0 {
    log.Info("Seed skipped, database already populated")
    return nil
  }

  parent := &domain.Parent{
    ID:            uuid.New(),
    Name:          "John Doe",
    Email:         "john.doe@example.com",
    WalletBalance: decimal.RequireFromString("1000.00"),
  }

  allergen := "Peanuts"
  student := &domain.Student{
    ID:       uuid.New(),
    Name:     "Jane Doe",
    ParentID: parent.ID,
    Allergen: &allergen,
  }

  canteen := &domain.Canteen{
    ID:   uuid.New(),
    Name: "Main School Canteen",
  }

  // Open Monday to Friday, ordering closes at 10:00.
  cutoff := 10 * time.Hour
  schedules := make([]*domain.CanteenSchedule, 0, 5)
  for day := time.Monday; day <= time.Friday; day++ {
    schedules = append(schedules, &domain.CanteenSchedule{
      ID:         uuid.New(),
      CanteenID:  canteen.ID,
      DayOfWeek:  day,
      CutoffTime: durationPtr(cutoff),
    })
  }

  menuItems := []*domain.MenuItem{
    {
      ID:              uuid.New(),
      Name:            "Chicken Sandwich",
      Price:           decimal.RequireFromString("5.99"),
      CanteenID:       canteen.ID,
      DailyStockCount: intPtr(50),
      AllergenTags:    datatypes.NewJSONSlice([]string{"Wheat", "Dairy"}),
    },
    {
      ID:              uuid.New(),
      Name:            "Vegetable Pasta",
      Price:           decimal.RequireFromString("4.99"),
      CanteenID:       canteen.ID,
      DailyStockCount: intPtr(30),
      AllergenTags:    datatypes.NewJSONSlice([]string{"Gluten", "Dairy"}),
    },
    {
      ID:           uuid.New(),
      Name:         "Fruit Salad",
      Price:        decimal.RequireFromString("3.49"),
      CanteenID:    canteen.ID,
      AllergenTags: datatypes.NewJSONSlice([]string{}),
    },
    {
      ID:              uuid.New(),
      Name:            "Peanut Butter Sandwich",
      Price:           decimal.RequireFromString("3.99"),
      CanteenID:       canteen.ID,
      DailyStockCount: intPtr(20),
      AllergenTags:    datatypes.NewJSONSlice([]string{"Peanuts", "Wheat"}),
    },
  }

  err := gormDB.Transaction(func(tx *gorm.DB) error {
    if err := tx.Create(parent).Error; err != nil {
      return err
    }
    if err := tx.Create(student).Error; err != nil {
      return err
    }
    if err := tx.Create(canteen).Error; err != nil {
      return err
    }
    if err := tx.Create(&schedules).Error; err != nil {
      return err
    }
    return tx.Create(&menuItems).Error
  })
  if err != nil {
    log.Error("Seeding failed", "error", err)
    return err
  }

  log.Info("Seed data loaded", "parent_id", parent.ID, "canteen_id", canteen.ID)
  return nil
}
