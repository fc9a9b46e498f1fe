package handler

import "storefront/internal/dto"

// RequestValidator plugs the dto validation rules into echo.Context.Validate.
type RequestValidator struct{}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return dto.Validate(i)
}
