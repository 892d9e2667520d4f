package web

import (
	"net/http"

	"matchbook/pkg/apperror"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// errorResponse is the body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps a domain error onto an HTTP status. Backend failures
// hide their cause from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperror.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(http.StatusBadGateway, errorResponse{Error: "backend unavailable"})
	}
}

// respondAuthError is respondError for credential checks, where a validation
// failure means the caller is not who they claim to be.
func respondAuthError(c *gin.Context, err error) {
	if apperror.IsValidation(err) {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	respondError(c, err)
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
}
