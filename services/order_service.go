package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/soleworks/soleworks-api/models"
	"github.com/soleworks/soleworks-api/utils"
)

// ErrOrderNotFound is returned when an order id does not resolve
var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateOrderNumber is returned when the store rejects a generated
// order number. Collisions are cryptographically unlikely and are not retried.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

// ErrInvalidStatus is returned when a status update names a value outside
// the enumerated domain
var ErrInvalidStatus = errors.New("invalid order status")

// OrderService orchestrates validation, persistence, caching, and eventing
// for customer orders
type OrderService struct {
	db        *gorm.DB
	validator *OrderValidator
	events    *EventPublisher
	cache     *OrderCache
}

// NewOrderService creates an order service
func NewOrderService(db *gorm.DB, validator *OrderValidator, events *EventPublisher, cache *OrderCache) *OrderService {
	return &OrderService{
		db:        db,
		validator: validator,
		events:    events,
		cache:     cache,
	}
}

// Create validates a submission, assigns a fresh order number and default
// status, and persists the order. Nothing is persisted on a validation
// failure.
func (s *OrderService) Create(ctx context.Context, in *CreateOrderInput) (*models.Order, error) {
	if verr := s.validator.Validate(in); verr != nil {
		utils.OrdersRejectedTotal.WithLabelValues(verr.Code).Inc()
		return nil, verr
	}

	order := models.Order{
		OrderNumber:   uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		ShoeSize:      in.ShoeSize,
		Address:       in.Address,
		ModelType:     in.ModelType,
		Layers:        in.Layers,
		Status:        models.StatusInProduction,
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	utils.OrdersCreatedTotal.Inc()
	s.events.PublishOrderCreated(ctx, &order)
	zap.L().Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("modelType", order.ModelType))

	return &order, nil
}

// List returns orders, optionally filtered by model type and sorted.
// The filter is applied before the sort. sortBy "votes" sorts by votes
// descending, "date" by creation time descending; anything else keeps
// natural (insertion) order.
func (s *OrderService) List(ctx context.Context, modelType, sortBy string) ([]models.Order, error) {
	query := s.db.WithContext(ctx)

	if modelType != "" {
		query = query.Where("model_type = ?", modelType)
	}

	switch sortBy {
	case "votes":
		query = query.Order("votes DESC")
	case "date":
		query = query.Order("created_at DESC")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns the order with the given id, consulting the cache first
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	if order, ok := s.cache.Get(ctx, id); ok {
		return order, nil
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	s.cache.Set(ctx, &order)
	return &order, nil
}

// UpdateStatus sets a new status on an order. The requested value must be a
// member of the enumerated status domain; transitions between members are
// not restricted. No other field is mutated.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	utils.OrdersStatusUpdatedTotal.WithLabelValues(status).Inc()
	s.events.PublishOrderStatusChanged(ctx, &order)
	zap.L().Info("order status updated",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("status", status))

	return &order, nil
}

// Delete removes an order by id
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&order).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	utils.OrdersDeletedTotal.Inc()
	s.events.PublishOrderDeleted(ctx, &order)
	zap.L().Info("order deleted", zap.String("orderNumber", order.OrderNumber))

	return nil
}

// isDuplicateKeyError detects unique-constraint violations from both
// PostgreSQL and SQLite
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
