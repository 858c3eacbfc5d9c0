package handlers

import (
	"net/http"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
	"github.com/gamecp/provisioner/internal/services"
	"github.com/gin-gonic/gin"
)

// ProvisionHandler serves the billing system's create and lifecycle hooks
type ProvisionHandler struct {
	serviceRepo  repository.ServiceRepository
	provisioning *services.ProvisioningService
	lifecycle    *services.LifecycleService
}

// NewProvisionHandler creates a new provision handler
func NewProvisionHandler(
	serviceRepo repository.ServiceRepository,
	provisioning *services.ProvisioningService,
	lifecycle *services.LifecycleService,
) *ProvisionHandler {
	return &ProvisionHandler{
		serviceRepo:  serviceRepo,
		provisioning: provisioning,
		lifecycle:    lifecycle,
	}
}

// loadService fetches the service record named in the route, answering the
// request itself when that fails
func (h *ProvisionHandler) loadService(c *gin.Context) (*models.Service, models.Credentials, bool) {
	serviceID := c.Param("service_id")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "Service ID is required",
		})
		return nil, models.Credentials{}, false
	}

	svc, err := h.serviceRepo.Get(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceLookup(c, serviceID, err)
		return nil, models.Credentials{}, false
	}

	// Inline credentials are optional; an empty or absent body is fine
	var req hookRequest
	_ = c.ShouldBindJSON(&req)

	return svc, models.Credentials{Endpoint: req.Endpoint, Key: req.APIKey}, true
}

// Create handles the provisioning hook: it runs the full create flow and
// returns the new server identifier
func (h *ProvisionHandler) Create(c *gin.Context) {
	svc, inline, ok := h.loadService(c)
	if !ok {
		return
	}

	serverID, err := h.provisioning.Create(c.Request.Context(), svc, inline)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    "success",
		"server_id": serverID,
	})
}

// Suspend handles the suspension hook (stops the server)
func (h *ProvisionHandler) Suspend(c *gin.Context) {
	svc, inline, ok := h.loadService(c)
	if !ok {
		return
	}

	if err := h.lifecycle.Suspend(c.Request.Context(), svc, inline); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Unsuspend handles the unsuspension hook (starts the server)
func (h *ProvisionHandler) Unsuspend(c *gin.Context) {
	svc, inline, ok := h.loadService(c)
	if !ok {
		return
	}

	if err := h.lifecycle.Unsuspend(c.Request.Context(), svc, inline); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Terminate handles the termination hook (deletes the server)
func (h *ProvisionHandler) Terminate(c *gin.Context) {
	svc, inline, ok := h.loadService(c)
	if !ok {
		return
	}

	if err := h.lifecycle.Terminate(c.Request.Context(), svc, inline); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
