package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code and kind.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status(), ErrorResponse{Error: appErr.Message, Kind: string(appErr.Kind)})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  string(apperror.KindInternal),
	})
}

// AbortError sends a JSON error response and aborts the handler chain.
func AbortError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Status(), ErrorResponse{Error: appErr.Message, Kind: string(appErr.Kind)})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  string(apperror.KindInternal),
	})
}
