package service

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/apperror"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/dto"
	"storefront/internal/event"
	"storefront/internal/model"
	"storefront/internal/repository"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, identity auth.Identity, req *dto.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, identity auth.Identity, orderID uint) (*model.Order, error)
	ListOrders(ctx context.Context, identity auth.Identity, filter repository.OrderFilter) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, identity auth.Identity, orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderServiceImpl struct {
	db            *gorm.DB
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	productCache  cache.ProductCache
	publisher     event.Publisher
	log           *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	productCache cache.ProductCache,
	publisher event.Publisher,
	log *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:            db,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		productCache:  productCache,
		publisher:     publisher,
		log:           log,
	}
}

const publishTimeout = 5 * time.Second

type pricedLine struct {
	product  *model.Product
	quantity int
}

// CreateOrder prices every line from current catalog data, then in one transaction inserts the
// order and its items, takes the stock and appends the ledger. Any failure rolls back all of it.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, identity auth.Identity, req *dto.CreateOrderRequest) (*model.Order, error) {
	if identity.UserID == "" {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store, err := s.storeRepo.FindByID(ctx, tx, req.StoreID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !store.IsActive) {
			return apperror.NotFound("Store not found or inactive")
		}
		if err != nil {
			return fmt.Errorf("get store: %w", err)
		}

		lines, total, err := s.priceLines(ctx, tx, store, req.Items)
		if err != nil {
			return err
		}

		order = &model.Order{
			UserID:        identity.UserID,
			StoreID:       store.ID,
			Status:        model.OrderStatusPaid, // payment is confirmed synchronously
			Total:         total,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: model.PaymentStatusPaid,
			PaymentPhone:  req.PaymentPhoneNumber,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		items := make([]*model.OrderItem, len(lines))
		logs := make([]*model.InventoryLog, len(lines))
		for i, line := range lines {
			items[i] = &model.OrderItem{
				OrderID:   order.ID,
				ProductID: line.product.ID,
				Quantity:  line.quantity,
				Price:     line.product.Price,
			}
			logs[i] = &model.InventoryLog{
				ProductID: line.product.ID,
				Change:    -line.quantity,
				Reason:    fmt.Sprintf("Order #%d", order.ID),
			}
		}

		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		for _, line := range lines {
			if err := s.takeStock(ctx, tx, line); err != nil {
				return err
			}
		}

		if err := s.inventoryRepo.Append(ctx, tx, logs); err != nil {
			return fmt.Errorf("append inventory logs: %w", err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("store_id", order.StoreID),
		zap.String("user_id", order.UserID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	s.afterOrderWrite(ctx, event.TypeOrderCreated, order, "")

	return order, nil
}

// priceLines loads and row-locks each product, checks stock against the cumulative quantity
// requested for it and sums the total from catalog prices.
func (s *orderServiceImpl) priceLines(ctx context.Context, tx *gorm.DB, store *model.Store, items []*dto.OrderItem) ([]pricedLine, int64, error) {
	products := make(map[uint]*model.Product, len(items))
	requested := make(map[uint]int, len(items))
	lines := make([]pricedLine, 0, len(items))
	var total int64

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			var err error
			product, err = s.productRepo.FindByIDForUpdate(ctx, tx, item.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, &apperror.ProductNotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				return nil, 0, fmt.Errorf("get product %d: %w", item.ProductID, err)
			}
			products[item.ProductID] = product
		}

		if product.StoreID != nil && *product.StoreID != store.ID {
			return nil, 0, apperror.BusinessRule("Product %s is not sold by this store", product.Name)
		}

		requested[product.ID] += item.Quantity
		if product.Stock < requested[product.ID] {
			return nil, 0, &apperror.InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Stock,
				Requested: requested[product.ID],
			}
		}

		total += product.Price * int64(item.Quantity)
		lines = append(lines, pricedLine{product: product, quantity: item.Quantity})
	}

	return lines, total, nil
}

// takeStock is the guarded decrement. A concurrent order that got there first makes it fail
// with InsufficientStock even though the earlier read looked fine.
func (s *orderServiceImpl) takeStock(ctx context.Context, tx *gorm.DB, line pricedLine) error {
	ok, err := s.productRepo.DecrementStock(ctx, tx, line.product.ID, line.quantity)
	if err != nil {
		return fmt.Errorf("decrement stock of product %d: %w", line.product.ID, err)
	}
	if ok {
		return nil
	}

	available := 0
	if current, err := s.productRepo.FindByID(ctx, tx, line.product.ID); err == nil {
		available = current.Stock
	}
	return &apperror.InsufficientStockError{
		ProductID: line.product.ID,
		Name:      line.product.Name,
		Available: available,
		Requested: line.quantity,
	}
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, identity auth.Identity, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindWithItems(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	// other customers' orders are reported as missing, not forbidden
	if !identity.IsAdmin() && order.UserID != identity.UserID {
		return nil, apperror.NotFound("Order not found")
	}

	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, identity auth.Identity, filter repository.OrderFilter) ([]*model.Order, error) {
	if identity.UserID == "" {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if !identity.IsAdmin() {
		filter.UserID = identity.UserID
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus moves an order along pending → paid → shipped → delivered, or to cancelled
// from any non-terminal state. Cancelling returns the items to stock.
func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, identity auth.Identity, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !identity.IsAdmin() {
		return nil, apperror.Forbidden("Admin access required")
	}
	if !status.Valid() {
		return nil, apperror.Validation("unknown order status %q", status)
	}

	var previous model.OrderStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByID(ctx, tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Order not found")
		}
		if err != nil {
			return fmt.Errorf("get order %d: %w", orderID, err)
		}

		previous = order.Status
		if order.Status == status {
			return nil
		}
		if !order.Status.CanTransitionTo(status) {
			return apperror.BusinessRule("Invalid status transition from %s to %s", order.Status, status)
		}

		paymentStatus := order.PaymentStatus
		switch {
		case status == model.OrderStatusPaid:
			paymentStatus = model.PaymentStatusPaid
		case status == model.OrderStatusCancelled && paymentStatus == model.PaymentStatusPaid:
			paymentStatus = model.PaymentStatusRefunded
		}

		err = s.orderRepo.UpdateStatus(ctx, tx, orderID, order.Status, status, paymentStatus)
		if errors.Is(err, repository.ErrStatusConflict) {
			return apperror.BusinessRule("Order #%d was modified concurrently", orderID)
		}
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if status == model.OrderStatusCancelled {
			return s.restock(ctx, tx, orderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindWithItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order %d: %w", orderID, err)
	}

	if previous != status {
		s.log.Info("order status changed",
			zap.Uint("order_id", orderID),
			zap.String("from", string(previous)),
			zap.String("to", string(status)),
			zap.String("by", identity.UserID),
		)
		s.afterOrderWrite(ctx, event.TypeOrderStatusChanged, order, previous)
	}

	return order, nil
}

func (s *orderServiceImpl) restock(ctx context.Context, tx *gorm.DB, orderID uint) error {
	items, err := s.orderRepo.GetOrderItems(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("get order items: %w", err)
	}

	logs := make([]*model.InventoryLog, len(items))
	for i, item := range items {
		if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("restock product %d: %w", item.ProductID, err)
		}
		logs[i] = &model.InventoryLog{
			ProductID: item.ProductID,
			Change:    item.Quantity,
			Reason:    fmt.Sprintf("Order #%d cancelled", orderID),
		}
	}

	if err := s.inventoryRepo.Append(ctx, tx, logs); err != nil {
		return fmt.Errorf("append inventory logs: %w", err)
	}
	return nil
}

// afterOrderWrite runs the side effects of a committed order change. They never fail the request.
func (s *orderServiceImpl) afterOrderWrite(ctx context.Context, eventType string, order *model.Order, previous model.OrderStatus) {
	if err := s.productCache.Invalidate(ctx); err != nil {
		s.log.Warn("invalidate product cache", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	// the order is committed, so a client hanging up must not drop its event
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishOrderEvent(pubCtx, event.NewOrderEvent(eventType, order, previous)); err != nil {
		s.log.Error("publish order event",
			zap.String("event_type", eventType),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}
}
