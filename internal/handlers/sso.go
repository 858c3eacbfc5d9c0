package handlers

import (
	"net/http"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
	"github.com/gamecp/provisioner/internal/services"
	"github.com/gin-gonic/gin"
)

// SSOHandler serves login redirects into the panel's web UI
type SSOHandler struct {
	serviceRepo repository.ServiceRepository
	sso         *services.SSOService
}

// NewSSOHandler creates a new SSO handler
func NewSSOHandler(serviceRepo repository.ServiceRepository, sso *services.SSOService) *SSOHandler {
	return &SSOHandler{
		serviceRepo: serviceRepo,
		sso:         sso,
	}
}

// ServiceLogin returns an authenticated redirect for a client, scoped to
// their server when provisioned. Degrades to the panel root; never errors
// once the service record loads.
func (h *SSOHandler) ServiceLogin(c *gin.Context) {
	serviceID := c.Param("service_id")
	svc, err := h.serviceRepo.Get(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceLookup(c, serviceID, err)
		return
	}

	redirect := h.sso.ServiceLogin(c.Request.Context(), svc, models.Credentials{})
	c.JSON(http.StatusOK, redirect)
}

// AdminLogin returns the settings-page redirect for a stored panel server
func (h *SSOHandler) AdminLogin(c *gin.Context) {
	redirect := h.sso.AdminLogin(c.Request.Context(), c.Param("server_record_id"))
	if redirect.RedirectTo == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "panel_not_found",
			"message": "No reachable panel server record",
		})
		return
	}
	c.JSON(http.StatusOK, redirect)
}
