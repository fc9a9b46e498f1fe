package server

import (
	"context"
	"net/http"
	"storefront/internal/auth"
	"storefront/internal/handler"
	appmiddleware "storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Services struct {
	Stores    service.StoreService
	Products  service.ProductService
	Orders    service.OrderService
	Analytics service.AnalyticsService
}

type Server struct {
	echo             *echo.Echo
	log              *zap.Logger
	tokens           *auth.TokenIssuer
	storeHandler     *handler.StoreHandler
	productHandler   *handler.ProductHandler
	orderHandler     *handler.OrderHandler
	analyticsHandler *handler.AnalyticsHandler
}

func NewServer(log *zap.Logger, tokens *auth.TokenIssuer, currency string, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewErrorHandler(log)
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:             e,
		log:              log,
		tokens:           tokens,
		storeHandler:     handler.NewStoreHandler(services.Stores),
		productHandler:   handler.NewProductHandler(services.Products),
		orderHandler:     handler.NewOrderHandler(services.Orders, currency),
		analyticsHandler: handler.NewAnalyticsHandler(services.Analytics),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", appmiddleware.Authenticate(s.tokens))
	admin := appmiddleware.RequireAdmin()

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- stores --------
	api.GET("/stores", s.storeHandler.ListStores)
	api.GET("/stores/:slug", s.storeHandler.GetStore)
	api.POST("/stores", s.storeHandler.CreateStore, admin)
	api.PATCH("/stores/:id", s.storeHandler.UpdateStore, admin)

	// -------- products --------
	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)
	api.POST("/products", s.productHandler.CreateProduct, admin)
	api.PUT("/products/:id", s.productHandler.UpdateProduct, admin)
	api.PATCH("/products/:id", s.productHandler.UpdateProduct, admin)
	api.DELETE("/products/:id", s.productHandler.DeleteProduct, admin)
	api.GET("/products/:id/inventory", s.productHandler.ListInventoryLogs, admin)

	// -------- orders --------
	orders := api.Group("/orders", appmiddleware.RequireUser())
	orders.POST("", s.orderHandler.CreateOrder)
	orders.GET("", s.orderHandler.ListOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.PATCH("/:id/status", s.orderHandler.UpdateOrderStatus, admin)

	// -------- analytics --------
	api.GET("/analytics/sales", s.analyticsHandler.SalesSummary, admin)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
