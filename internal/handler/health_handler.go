package handler

import (
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/config"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	MemoryAllocMB float64   `json:"memory_alloc_mb"`
	Goroutines    int       `json:"goroutines"`
	PID           int       `json:"pid"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	started := time.Now()

	return func(c *fiber.Ctx) error {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		payload := HealthResponse{
			Status:        "ok",
			Timestamp:     time.Now().UTC(),
			Service:       cfg.AppName,
			Environment:   cfg.AppEnv,
			UptimeSeconds: time.Since(started).Seconds(),
			MemoryAllocMB: float64(mem.Alloc) / (1024 * 1024),
			Goroutines:    runtime.NumGoroutine(),
			PID:           os.Getpid(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
