package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arbelos/inkwell/blog/application"
	"github.com/arbelos/inkwell/blog/domain"
	"github.com/arbelos/inkwell/blog/persistence"
)

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, guard failures 409, missing targets 404, uniqueness
// clashes 409, and storage faults 502 (retryable by the client, unlike the
// domain errors).
func writeError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		domainErr     *domain.DomainError
		notFoundErr   *application.NotFoundError
		conflictErr   *application.ConflictError
		storageErr    *persistence.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &domainErr):
		c.JSON(http.StatusConflict, gin.H{"error": domainErr.Error()})
	case errors.As(err, &storageErr):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Storage failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
