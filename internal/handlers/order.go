package handlers

import (
  "errors"
  "fmt"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/lunchline/canteen-backend/internal/domain"
  "github.com/lunchline/canteen-backend/internal/platform/apierr"
  "github.com/lunchline/canteen-backend/internal/platform/logger"
  "github.com/lunchline/canteen-backend/internal/services"
)

type OrderHandler struct {
  log          *logger.Logger
  orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
  return &OrderHandler{log: log.With("handler", "OrderHandler"), orderService: orderService}
}

type createOrderPayload struct {
  ParentID       uuid.UUID              `json:"parent_id" binding:"required"`
  StudentID      uuid.UUID              `json:"student_id" binding:"required"`
  CanteenID      uuid.UUID              `json:"canteen_id" binding:"required"`
  FulfilmentDate string                 `json:"fulfilment_date" binding:"required"`
  Items          []createOrderItemEntry `json:"items" binding:"required,min=1,dive"`
}

type createOrderItemEntry struct {
  MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
  Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrder handles POST /api/orders. The optional Idempotency-Key header
// makes a retried request return the original order instead of a duplicate.
func (oh *OrderHandler) CreateOrder(c *gin.Context) {
  var payload createOrderPayload
  if err := c.ShouldBindJSON(&payload); err != nil {
    RespondAPIError(c, apierr.BadRequest("invalid_request", err))
    return
  }

  fulfilmentDate, err := time.Parse("2006-01-02", payload.FulfilmentDate)
  if err != nil {
    RespondAPIError(c, apierr.BadRequest("invalid_request", fmt.Errorf("fulfilment_date must be YYYY-MM-DD: %w", err)))
    return
  }

  items := make([]services.OrderLineRequest, 0, len(payload.Items))
  for _, entry := range payload.Items {
    items = append(items, services.OrderLineRequest{
      MenuItemID: entry.MenuItemID,
      Quantity:   entry.Quantity,
    })
  }

  snap, err := oh.orderService.CreateOrder(c.Request.Context(), services.CreateOrderRequest{
    ParentID:       payload.ParentID,
    StudentID:      payload.StudentID,
    CanteenID:      payload.CanteenID,
    FulfilmentDate: fulfilmentDate,
    Items:          items,
    IdempotencyKey: c.GetHeader("Idempotency-Key"),
  })
  if err != nil {
    if ve, ok := domain.AsValidation(err); ok {
      RespondAPIError(c, apierr.BadRequest(ve.Code, ve))
      return
    }
    if errors.Is(err, domain.ErrConcurrencyConflict) {
      RespondAPIError(c, apierr.Conflict("concurrency_conflict", errors.New("order conflicted with a concurrent request, retry")))
      return
    }
    oh.log.Error("Failed to create order", "error", err)
    RespondAPIError(c, apierr.Internal(errors.New("an error occurred while creating the order")))
    return
  }

  RespondCreated(c, snap)
}

// GetOrder handles GET /api/orders/:id.
func (oh *OrderHandler) GetOrder(c *gin.Context) {
  orderID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondAPIError(c, apierr.BadRequest("invalid_request", fmt.Errorf("invalid order id: %w", err)))
    return
  }

  snap, err := oh.orderService.GetOrderByID(c.Request.Context(), orderID)
  if err != nil {
    if errors.Is(err, domain.ErrNotFound) {
      RespondAPIError(c, apierr.NotFound("order_not_found", fmt.Errorf("order with id %s not found", orderID)))
      return
    }
    oh.log.Error("Failed to fetch order", "error", err, "order_id", orderID)
    RespondAPIError(c, apierr.Internal(errors.New("an error occurred while fetching the order")))
    return
  }

  RespondOK(c, snap)
}
