package handler

import (
	"net/http"
	"storefront/internal/dto"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
	currency     string
}

func NewOrderHandler(orderService service.OrderService, currency string) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		currency:     currency,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(ctx, identityFrom(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewOrderResponse(order, h.currency))
}

// ListOrders accepts ?storeId= and, for admins, ?userId=.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := optionalIDQuery(c, "storeId")
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListOrders(ctx, identityFrom(c), repository.OrderFilter{
		UserID:  c.QueryParam("userId"),
		StoreID: storeID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponses(orders, h.currency))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, identityFrom(c), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponse(order, h.currency))
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, identityFrom(c), orderID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponse(order, h.currency))
}
