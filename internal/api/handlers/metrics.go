package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/harmony-api/internal/harmony"
	"github.com/gin-gonic/gin"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	bytesToMB        = 1024 * 1024
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	table     *harmony.TransitionTable
}

func NewMetricsHandler(version string, table *harmony.TransitionTable) *MetricsHandler {
	if table == nil {
		table = harmony.DefaultTransitions()
	}
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		table:     table,
	}
}

type MetricsResponse struct {
	Status    string         `json:"status"`
	Uptime    string         `json:"uptime"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
	StartTime string         `json:"start_time"`
	System    SystemMetrics  `json:"system"`
	Harmony   HarmonyMetrics `json:"harmony"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// HarmonyMetrics describes the engine behind the harmony endpoints
type HarmonyMetrics struct {
	Endpoints              []string `json:"endpoints"`
	DefaultRecommendations int      `json:"default_recommendations"`
	MaxRecommendations     int      `json:"max_recommendations"`
	Transitions            int      `json:"transitions"`
	EmbeddedTransitions    bool     `json:"embedded_transitions"`
}

// formatUptime renders d as 1h2m3.45s, dropping leading zero units
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}

// GetMetrics handles GET /api/metrics
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(time.Since(h.startTime)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   mem.Alloc / bytesToMB,
			MemTotalMB:   mem.TotalAlloc / bytesToMB,
			NumGC:        mem.NumGC,
		},
		Harmony: HarmonyMetrics{
			Endpoints:              []string{endpointRecommendations, endpointAnalyze},
			DefaultRecommendations: harmony.DefaultMaxRecommendations,
			MaxRecommendations:     harmony.MaxRecommendations,
			Transitions:            h.table.Len(),
			EmbeddedTransitions:    h.table == harmony.DefaultTransitions(),
		},
	})
}
