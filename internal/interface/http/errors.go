package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/internal/domain/repository"
	"github.com/ecofinds/ecofinds-api/pkg/response"
)

// fail maps service errors onto the HTTP taxonomy. Unknown errors become
// an opaque 500 so internal detail never leaks into responses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCartNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrUploadsDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, repository.ErrCartEmpty),
		errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, repository.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
