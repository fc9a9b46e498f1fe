package handler

import (
	"errors"
	"fmt"
	"net/http"
	"storefront/internal/apperror"
	"storefront/internal/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:   http.StatusBadRequest,
	apperror.KindBusinessRule: http.StatusBadRequest,
	apperror.KindNotFound:     http.StatusNotFound,
	apperror.KindUnauthorized: http.StatusUnauthorized,
	apperror.KindForbidden:    http.StatusForbidden,
	apperror.KindInternal:     http.StatusInternalServerError,
}

// NewErrorHandler renders every error as {"message": ...}. Internal errors are logged and hidden
// behind a generic message.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := resolve(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.ErrorResponse{Message: message})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	status, ok := kindStatus[apperror.KindOf(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	return status, apperror.Message(err)
}
