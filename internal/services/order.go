package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/data/repos"
	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/clock"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

// CreateOrderRequest is the full input of the order-creation use case.
// IdempotencyKey is the client-supplied retry token; empty disables the
// idempotency path.
type CreateOrderRequest struct {
	ParentID       uuid.UUID
	StudentID      uuid.UUID
	CanteenID      uuid.UUID
	FulfilmentDate time.Time
	Items          []OrderLineRequest
	IdempotencyKey string
}

type OrderLineRequest struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// OrderSnapshot is the immutable view of a committed order returned to the
// request layer.
type OrderSnapshot struct {
	ID             uuid.UUID           `json:"id"`
	ParentID       uuid.UUID           `json:"parent_id"`
	StudentID      uuid.UUID           `json:"student_id"`
	CanteenID      uuid.UUID           `json:"canteen_id"`
	FulfilmentDate time.Time           `json:"fulfilment_date"`
	CreatedAt      time.Time           `json:"created_at"`
	Status         string              `json:"status"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Items          []OrderLineSnapshot `json:"items"`
}

type OrderLineSnapshot struct {
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSnapshot, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*OrderSnapshot, error)
}

type orderService struct {
	db           *gorm.DB
	log          *logger.Logger
	clk          clock.Clock
	parentRepo   repos.ParentRepo
	studentRepo  repos.StudentRepo
	canteenRepo  repos.CanteenRepo
	menuItemRepo repos.MenuItemRepo
	orderRepo    repos.OrderRepo
}

func NewOrderService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	parentRepo repos.ParentRepo,
	studentRepo repos.StudentRepo,
	canteenRepo repos.CanteenRepo,
	menuItemRepo repos.MenuItemRepo,
	orderRepo repos.OrderRepo,
) OrderService {
	return &orderService{
		db:           db,
		log:          baseLog.With("service", "OrderService"),
		clk:          clk,
		parentRepo:   parentRepo,
		studentRepo:  studentRepo,
		canteenRepo:  canteenRepo,
		menuItemRepo: menuItemRepo,
		orderRepo:    orderRepo,
	}
}

// CreateOrder runs the whole order-creation transaction: idempotency fast
// path, cross-entity validation in deterministic order, stock decrement,
// wallet debit and order confirmation, all committed atomically. A replayed
// idempotency key returns the original order without re-validation, even if
// current stock or balance would now reject it.
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSnapshot, error) {
	log := s.log.With("parent_id", req.ParentID, "student_id", req.StudentID, "canteen_id", req.CanteenID)
	log.Info("Creating order", "items", len(req.Items))

	// Idempotency fast path, before any transaction is opened.
	if req.IdempotencyKey != "" {
		existing, err := s.orderRepo.GetByIdempotencyKey(dbctx.Context{Ctx: ctx}, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing != nil {
			log.Info("Idempotent replay detected, returning existing order", "order_id", existing.ID)
			return snapshotFromOrder(existing), nil
		}
	}

	var snap *OrderSnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		built, err := s.placeAndConfirm(dbc, req)
		if err != nil {
			return err
		}
		snap = built
		return nil
	})
	if err != nil {
		// Two first-time requests raced on the same key; the storage-level
		// unique index picked a winner. Replay the winner's order.
		if req.IdempotencyKey != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, lookupErr := s.orderRepo.GetByIdempotencyKey(dbctx.Context{Ctx: ctx}, req.IdempotencyKey)
			if lookupErr != nil {
				return nil, fmt.Errorf("idempotency conflict lookup: %w", lookupErr)
			}
			if winner != nil {
				log.Info("Lost idempotency insert race, returning winning order", "order_id", winner.ID)
				return snapshotFromOrder(winner), nil
			}
			return nil, err
		}
		if _, ok := domain.AsValidation(err); ok {
			log.Warn("Order validation failed", "error", err)
		} else {
			log.Error("Order creation failed", "error", err)
		}
		return nil, err
	}

	log.Info("Order created", "order_id", snap.ID, "total_amount", snap.TotalAmount)
	return snap, nil
}

// placeAndConfirm is the transactional body of CreateOrder. Any error return
// rolls the surrounding transaction back, so no partial stock or wallet
// mutation ever becomes visible.
func (s *orderService) placeAndConfirm(dbc dbctx.Context, req CreateOrderRequest) (*OrderSnapshot, error) {
	parent, err := s.parentRepo.GetByID(dbc, req.ParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.NewValidationError(domain.CodeParentNotFound, fmt.Sprintf("parent with id %s not found", req.ParentID))
	}

	student, err := s.studentRepo.GetByID(dbc, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.NewValidationError(domain.CodeStudentNotFound, fmt.Sprintf("student with id %s not found", req.StudentID))
	}
	if student.ParentID != req.ParentID {
		return nil, domain.NewValidationError(domain.CodeStudentParentMismatch, "student does not belong to the specified parent")
	}

	canteen, err := s.canteenRepo.GetByID(dbc, req.CanteenID)
	if err != nil {
		return nil, err
	}
	if canteen == nil {
		return nil, domain.NewValidationError(domain.CodeCanteenNotFound, fmt.Sprintf("canteen with id %s not found", req.CanteenID))
	}

	fulfilmentDate := truncateToDate(req.FulfilmentDate)
	day := fulfilmentDate.Weekday()
	if !canteen.IsOpenOnDay(day) {
		return nil, domain.NewValidationError(domain.CodeCanteenClosed, fmt.Sprintf("canteen is not open on %s", day))
	}

	// Cutoff compares only the current wall-clock time-of-day against the
	// fulfilment weekday's cutoff, regardless of which date is being ordered
	// for. Kept as the product defined it.
	if cutoff := canteen.CutoffForDay(day); cutoff != nil {
		if clock.TimeOfDay(s.clk.Now()) > *cutoff {
			return nil, domain.NewValidationError(domain.CodeCutoffPassed, fmt.Sprintf("order cutoff time (%s) has passed", *cutoff))
		}
	}

	orderID := uuid.New()
	totalAmount := decimal.Zero
	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	lines := make([]OrderLineSnapshot, 0, len(req.Items))
	menuItems := make([]*domain.MenuItem, 0, len(req.Items))

	for i, line := range req.Items {
		menuItem, err := s.menuItemRepo.GetByID(dbc, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, domain.NewValidationError(domain.CodeMenuItemNotFound, fmt.Sprintf("menu item with id %s not found", line.MenuItemID))
		}
		if menuItem.CanteenID != req.CanteenID {
			return nil, domain.NewValidationError(domain.CodeMenuItemCanteenMismatch, fmt.Sprintf("menu item %s does not belong to the specified canteen", menuItem.ID))
		}
		if !menuItem.IsInStock(line.Quantity) {
			return nil, domain.NewValidationError(domain.CodeInsufficientStock, fmt.Sprintf("insufficient stock for menu item %s", menuItem.Name))
		}
		if student.Allergen != nil && *student.Allergen != "" && menuItem.HasAllergen(*student.Allergen) {
			return nil, domain.NewValidationError(domain.CodeAllergenConflict,
				fmt.Sprintf("menu item %s contains allergen %s which the student is allergic to", menuItem.Name, *student.Allergen))
		}

		lineTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)

		orderItems = append(orderItems, domain.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Position:   i,
		})
		lines = append(lines, OrderLineSnapshot{
			MenuItemID:   menuItem.ID,
			MenuItemName: menuItem.Name,
			Quantity:     line.Quantity,
			UnitPrice:    menuItem.Price,
		})
		menuItems = append(menuItems, menuItem)
	}

	if parent.WalletBalance.LessThan(totalAmount) {
		return nil, domain.NewValidationError(domain.CodeInsufficientFunds,
			fmt.Sprintf("insufficient wallet balance. required: %s, available: %s", totalAmount, parent.WalletBalance))
	}

	// Commit phase: mutate every aggregate in memory, then persist together.
	for i, menuItem := range menuItems {
		if err := menuItem.DecrementStock(orderItems[i].Quantity); err != nil {
			return nil, err
		}
		if err := s.menuItemRepo.UpdateStock(dbc, menuItem); err != nil {
			return nil, err
		}
	}

	if err := parent.DebitWallet(totalAmount); err != nil {
		return nil, err
	}
	if err := s.parentRepo.UpdateWallet(dbc, parent); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:             orderID,
		ParentID:       parent.ID,
		StudentID:      student.ID,
		CanteenID:      canteen.ID,
		FulfilmentDate: fulfilmentDate,
		CreatedAt:      s.clk.UtcNow(),
		Status:         domain.OrderStatusPlaced,
		TotalAmount:    totalAmount,
		Items:          orderItems,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		order.IdempotencyKey = &key
	}

	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(dbc, order); err != nil {
		return nil, err
	}

	return &OrderSnapshot{
		ID:             order.ID,
		ParentID:       order.ParentID,
		StudentID:      order.StudentID,
		CanteenID:      order.CanteenID,
		FulfilmentDate: order.FulfilmentDate,
		CreatedAt:      order.CreatedAt,
		Status:         string(order.Status),
		TotalAmount:    order.TotalAmount,
		Items:          lines,
	}, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*OrderSnapshot, error) {
	order, err := s.orderRepo.GetByID(dbctx.Context{Ctx: ctx}, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return snapshotFromOrder(order), nil
}

func snapshotFromOrder(order *domain.Order) *OrderSnapshot {
	items := make([]OrderLineSnapshot, 0, len(order.Items))
	for _, item := range order.Items {
		name := ""
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		items = append(items, OrderLineSnapshot{
			MenuItemID:   item.MenuItemID,
			MenuItemName: name,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return &OrderSnapshot{
		ID:             order.ID,
		ParentID:       order.ParentID,
		StudentID:      order.StudentID,
		CanteenID:      order.CanteenID,
		FulfilmentDate: order.FulfilmentDate,
		CreatedAt:      order.CreatedAt,
		Status:         string(order.Status),
		TotalAmount:    order.TotalAmount,
		Items:          items,
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
