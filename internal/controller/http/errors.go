package http

import (
	"errors"
	"net/http"

	"campusnet/internal/usecase"
	"campusnet/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase errors onto the HTTP taxonomy: validation 400,
// bad credentials 401, missing records 404, everything unexpected 500 with a
// generic body and the cause kept in the server log.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidBio),
		errors.Is(err, usecase.ErrSelfFollow),
		errors.Is(err, usecase.ErrAlreadyFollowing),
		errors.Is(err, usecase.ErrNotFollowing),
		errors.Is(err, usecase.ErrInvalidPostID),
		errors.Is(err, usecase.ErrInvalidContentType),
		errors.Is(err, usecase.ErrInvalidText),
		errors.Is(err, usecase.ErrInvalidImageURLs),
		errors.Is(err, usecase.ErrInvalidVideoURL),
		errors.Is(err, usecase.ErrInvalidComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
