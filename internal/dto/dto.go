package dto

import "storefront/internal/model"

type ErrorResponse struct {
	Message string `json:"message"`
}

// -------- stores --------

type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Slug     string `json:"slug" validate:"required,max=64,slug"`
	Color    string `json:"color" validate:"omitempty,max=16"`
	IsActive *bool  `json:"isActive"`
}

type UpdateStoreRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=128"`
	Slug     *string `json:"slug" validate:"omitnil,max=64,slug"`
	Color    *string `json:"color" validate:"omitnil,min=1,max=16"`
	IsActive *bool   `json:"isActive"`
}

// -------- products --------

type CreateProductRequest struct {
	StoreID     *uint  `json:"storeId" validate:"omitnil,min=1"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Price       *int64 `json:"price" validate:"required,min=0"`
	Category    string `json:"category" validate:"required,max=64"`
	Stock       *int   `json:"stock" validate:"omitnil,min=0"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=2048"`
}

type UpdateProductRequest struct {
	StoreID     *uint   `json:"storeId" validate:"omitnil,min=1"`
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"omitnil,min=0"`
	Category    *string `json:"category" validate:"omitnil,min=1,max=64"`
	Stock       *int    `json:"stock" validate:"omitnil,min=0"`
	ImageURL    *string `json:"imageUrl" validate:"omitnil,max=2048"`
}

// -------- orders --------

type OrderItem struct {
	ProductID uint `json:"productId" validate:"required,min=1"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest carries no total: the server always prices the order itself.
type CreateOrderRequest struct {
	StoreID            uint                `json:"storeId" validate:"required,min=1"`
	Items              []*OrderItem        `json:"items" validate:"required,min=1,dive,required"`
	PaymentMethod      model.PaymentMethod `json:"paymentMethod" validate:"required,oneof=mpesa card"`
	PaymentPhoneNumber string              `json:"paymentPhoneNumber" validate:"required_if=PaymentMethod mpesa,omitempty,msisdn"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

type OrderResponse struct {
	*model.Order
	Currency     string `json:"currency"`
	TotalDisplay string `json:"totalDisplay"`
}

func NewOrderResponse(order *model.Order, currency string) *OrderResponse {
	return &OrderResponse{
		Order:        order,
		Currency:     currency,
		TotalDisplay: FormatAmount(order.Total),
	}
}

func NewOrderResponses(orders []*model.Order, currency string) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = NewOrderResponse(order, currency)
	}
	return out
}

// -------- analytics --------

type CategorySales struct {
	Category   string `json:"category"`
	TotalSales int64  `json:"totalSales"`
	Units      int64  `json:"units"`
}

type SalesSummary struct {
	TotalSales        int64            `json:"totalSales"`
	Count             int64            `json:"count"`
	ByCategory        []*CategorySales `json:"byCategory"`
	Currency          string           `json:"currency"`
	TotalSalesDisplay string           `json:"totalSalesDisplay"`
}
