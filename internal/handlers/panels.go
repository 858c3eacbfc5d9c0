package handlers

import (
	"net/http"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/services"
	"github.com/gin-gonic/gin"
)

// PanelHandler serves panel-level operations that are not tied to a service
type PanelHandler struct {
	tester *services.ConnectionTester
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(tester *services.ConnectionTester) *PanelHandler {
	return &PanelHandler{tester: tester}
}

// TestConnection probes a panel using a stored server record or inline
// credentials. The outcome is always 200 with a success flag; the probe
// failing is a valid answer, not an API error.
func (h *PanelHandler) TestConnection(c *gin.Context) {
	var req models.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "Provide a server_record_id or endpoint and api_key",
		})
		return
	}

	result := h.tester.Test(c.Request.Context(), services.CredentialBundle{
		Endpoint:       req.Endpoint,
		Key:            req.APIKey,
		ServerRecordID: req.ServerRecordID,
	})

	c.JSON(http.StatusOK, result)
}
