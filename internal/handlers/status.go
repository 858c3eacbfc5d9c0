package handlers

import (
	"net/http"
	"strings"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
	"github.com/gamecp/provisioner/internal/services"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves the account-management page: live status, metrics,
// the connection address, and the control actions
type StatusHandler struct {
	serviceRepo repository.ServiceRepository
	status      *services.StatusService
	lifecycle   *services.LifecycleService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(
	serviceRepo repository.ServiceRepository,
	status *services.StatusService,
	lifecycle *services.LifecycleService,
) *StatusHandler {
	return &StatusHandler{
		serviceRepo: serviceRepo,
		status:      status,
		lifecycle:   lifecycle,
	}
}

// View returns the status page data for one service
func (h *StatusHandler) View(c *gin.Context) {
	serviceID := c.Param("service_id")
	svc, err := h.serviceRepo.Get(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceLookup(c, serviceID, err)
		return
	}

	view, err := h.status.BuildView(c.Request.Context(), svc, models.Credentials{}, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ucfirst capitalizes the first letter of an ASCII action word
func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Control issues a start/stop/restart action and returns the refreshed
// status view carrying a result message, mirroring the page's post-action
// reload. Control failures surface in the message, not as an error: the
// page must still render.
func (h *StatusHandler) Control(c *gin.Context) {
	serviceID := c.Param("service_id")
	svc, err := h.serviceRepo.Get(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceLookup(c, serviceID, err)
		return
	}

	var req models.ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "A control action (start, stop, restart) is required",
		})
		return
	}

	var message string
	if err := h.lifecycle.Control(c.Request.Context(), svc, models.Credentials{}, req.Action); err != nil {
		message = "Failed to " + req.Action + " server: " + err.Error()
	} else {
		message = ucfirst(req.Action) + " command sent successfully."
	}

	view, err := h.status.BuildView(c.Request.Context(), svc, models.Credentials{}, message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
