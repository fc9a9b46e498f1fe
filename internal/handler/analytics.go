package handler

import (
	"net/http"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) SalesSummary(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := optionalIDQuery(c, "storeId")
	if err != nil {
		return err
	}

	summary, err := h.analyticsService.SalesSummary(ctx, identityFrom(c), storeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
