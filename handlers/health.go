package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/utils"
)

var startTime = time.Now()

// HandleHealthCheck reports service liveness, datastore connectivity and a
// point-in-time resource snapshot. Datastore failure degrades the report to
// 503 rather than failing the endpoint.
func HandleHealthCheck(w http.ResponseWriter, req *http.Request) {
	health := models.HealthResource{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "donations-api",
		Version:   "1.0.0",
		Database: models.HealthDatabase{
			Status: "connected",
			Name:   donationService.Config.Database,
		},
		Environment: models.HealthEnvironment{
			Go:  runtime.Version(),
			Env: donationService.Config.Environment,
		},
	}

	status := http.StatusOK
	if err := donationService.DAO.Ping(req.Context()); err != nil {
		health.Status = "degraded"
		health.Database.Status = "disconnected"
		status = http.StatusServiceUnavailable
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	health.System = models.HealthSystem{
		Uptime:     time.Since(startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Memory: models.HealthMemory{
			Alloc:      toMB(memStats.Alloc),
			TotalAlloc: toMB(memStats.TotalAlloc),
			Sys:        toMB(memStats.Sys),
			HeapInUse:  toMB(memStats.HeapInuse),
		},
	}

	utils.WriteJSONWithStatus(w, req, health, status)
}

func toMB(b uint64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/1024/1024)
}
