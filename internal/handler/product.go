package handler

import (
	"net/http"
	"storefront/internal/dto"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProducts supports ?category= and ?storeId= filters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := optionalIDQuery(c, "storeId")
	if err != nil {
		return err
	}

	products, err := h.productService.ListProducts(ctx, repository.ProductFilter{
		Category: c.QueryParam("category"),
		StoreID:  storeID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	product, err := h.productService.CreateProduct(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	product, err := h.productService.UpdateProduct(ctx, productID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) ListInventoryLogs(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	logs, err := h.productService.ListInventoryLogs(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, logs)
}
