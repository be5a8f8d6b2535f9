package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/harmony-api/internal/harmony"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	table *harmony.TransitionTable
}

func NewHealthHandler(table *harmony.TransitionTable) *HealthHandler {
	if table == nil {
		table = harmony.DefaultTransitions()
	}
	return &HealthHandler{table: table}
}

// HealthCheck returns the health status of the API and the loaded transition table
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"transitions": gin.H{
			"status":      "loaded",
			"modes":       []string{harmony.ModeMajor.String(), harmony.ModeMinor.String()},
			"transitions": h.table.Len(),
		},
	})
}
