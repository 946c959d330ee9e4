package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"friendapp-api/apperr"
	"friendapp-api/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SendError translates an application error into its stable status class.
// Anything that is not an apperr surfaces as an opaque internal failure.
func SendError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.Code == apperr.CodeInternal {
			logger.Error("Internal error", "path", c.FullPath(), "error", err)
		}
		c.JSON(apperr.HTTPStatus(appErr.Code), ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	logger.Error("Unexpected error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   apperr.CodeInternal,
		Message: "internal error",
	})
}

// SendValidationError reports a malformed request body or parameter.
func SendValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   apperr.CodeInvalidInput,
		Message: message,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{Message: message}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Message: message,
		Data:    data,
	})
}
