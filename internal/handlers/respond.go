package handlers

import (
	"errors"
	"net/http"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/repository"
	"github.com/gamecp/provisioner/internal/services"
	"github.com/gin-gonic/gin"
)

// hookRequest carries the optional inline credentials a hook invocation may
// supply, overriding stored server records
type hookRequest struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

// respondError translates an orchestration failure into the well-formed
// JSON outcome the billing system expects. Nothing unclassified escapes:
// unknown errors become a generic internal failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCredentialsMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "credentials_missing",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrIdentifierMissing):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "identifier_missing",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrGameTypeMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "game_type_missing",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrUserBindingFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "user_binding_failed",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrProvisioningFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "provisioning_failed",
			"message": err.Error(),
		})
	default:
		if apiErr := panel.AsAPIError(err); apiErr != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":       "remote_failure",
				"message":     apiErr.Message,
				"remote_code": apiErr.Code,
				"http_status": apiErr.StatusCode,
			})
			return
		}
		if panel.IsTransport(err) {
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error":   "transport_error",
				"message": err.Error(),
			})
			return
		}
		logger.WithField("error", err.Error()).Error("Unclassified hook failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "The provisioning hook failed unexpectedly",
		})
	}
}

// respondServiceLookup handles a failed service record load
func respondServiceLookup(c *gin.Context, serviceID string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "service_not_found",
			"message": "No service record with id " + serviceID,
		})
		return
	}
	logger.WithFields(map[string]interface{}{
		"service_id": serviceID,
		"error":      err.Error(),
	}).Error("Failed to load service record")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "store_unavailable",
		"message": "Could not load the service record",
	})
}
