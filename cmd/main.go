package main

import (
  "fmt"
  "os"

  "github.com/lunchline/canteen-backend/internal/data/repos"
  "github.com/lunchline/canteen-backend/internal/db"
  "github.com/lunchline/canteen-backend/internal/handlers"
  "github.com/lunchline/canteen-backend/internal/platform/clock"
  "github.com/lunchline/canteen-backend/internal/platform/envutil"
  "github.com/lunchline/canteen-backend/internal/platform/logger"
  "github.com/lunchline/canteen-backend/internal/server"
  "github.com/lunchline/canteen-backend/internal/services"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Seed
  if envutil.GetEnvAsBool("SEED_DATA", false, log) {
    if err := db.Seed(thePG, log); err != nil {
      log.Error("Seeding failed", "error", err)
      os.Exit(1)
    }
  }

  // Repos
  log.Info("Setting up Repos from main...")
  parentRepo := repos.NewParentRepo(thePG, log)
  studentRepo := repos.NewStudentRepo(thePG, log)
  canteenRepo := repos.NewCanteenRepo(thePG, log)
  menuItemRepo := repos.NewMenuItemRepo(thePG, log)
  orderRepo := repos.NewOrderRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  orderService := services.NewOrderService(
    thePG,
    log,
    clock.System(),
    parentRepo,
    studentRepo,
    canteenRepo,
    menuItemRepo,
    orderRepo,
  )

  // Handlers
  orderHandler := handlers.NewOrderHandler(log, orderService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    OrderHandler: orderHandler,
  })

  port := envutil.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
