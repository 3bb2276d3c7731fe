package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mickyas16/postpulse/internal/domain/entity"
	"github.com/mickyas16/postpulse/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// HandleUsecaseError maps the usecase error taxonomy to HTTP statuses.
func HandleUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		ErrorHandler(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, err.Error())
	default:
		ErrorHandler(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
