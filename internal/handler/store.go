package handler

import (
	"net/http"
	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

func (h *StoreHandler) ListStores(c echo.Context) error {
	ctx := c.Request().Context()

	// only admins may look at inactive stores
	includeInactive := c.QueryParam("all") == "true" && identityFrom(c).IsAdmin()

	stores, err := h.storeService.ListStores(ctx, includeInactive)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) GetStore(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.storeService.GetStoreBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) CreateStore(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	store, err := h.storeService.CreateStore(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) UpdateStore(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	store, err := h.storeService.UpdateStore(ctx, storeID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, store)
}
