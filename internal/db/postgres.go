package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/lunchline/canteen-backend/internal/domain"
  "github.com/lunchline/canteen-backend/internal/platform/envutil"
  "github.com/lunchline/canteen-backend/internal/platform/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := envutil.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := envutil.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := envutil.GetEnv("POSTGRES_NAME", "canteen", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    // Unique violations surface as gorm.ErrDuplicatedKey, which the order
    // service relies on to resolve idempotency-key insert races.
    TranslateError: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  sqlDB, err := gormDB.DB()
  if err != nil {
    return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
  }
  sqlDB.SetMaxOpenConns(envutil.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25, log))
  sqlDB.SetMaxIdleConns(envutil.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, log))

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &domain.Parent{},
    &domain.Student{},
    &domain.Canteen{},
    &domain.CanteenSchedule{},
    &domain.MenuItem{},
    &domain.Order{},
    &domain.OrderItem{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
