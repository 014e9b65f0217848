package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB        Pinger
	VaultPath string
	StartTime time.Time
	Version   string
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, vaultPath, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		VaultPath: vaultPath,
		StartTime: time.Now(),
		Version:   version,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	healthy := true

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := h.DB.PingContext(ctx)
		cancel()
		if err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
			healthy = false
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = errNotConfigured.Error()
		healthy = false
	}

	// A vault that does not exist yet is fine: nothing has been harvested.
	switch _, err := os.Stat(h.VaultPath); {
	case h.VaultPath == "":
		deps["vault"] = errNotConfigured.Error()
	case err == nil:
		deps["vault"] = "present"
	case os.IsNotExist(err):
		deps["vault"] = "empty"
	default:
		deps["vault"] = fmt.Sprintf("unhealthy: %v", err)
		healthy = false
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
