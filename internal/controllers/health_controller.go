package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"petcare/internal/persistence"
	"petcare/internal/services"
	"time"
)

// WriterSource exposes the per-document write queues.
type WriterSource interface {
	Writers() []*persistence.KeyWriter
}

type HealthController struct {
	pets      services.PetStoreInterface
	tasks     services.TaskStoreInterface
	writers   WriterSource
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Pets          int     `json:"pets"`
	Tasks         int     `json:"tasks"`
	PendingWrites int     `json:"pending_writes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	pending := 0
	for _, kw := range hc.writers.Writers() {
		if kw.HasPending() {
			pending++
		}
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Pets:          hc.pets.Len(),
		Tasks:         hc.tasks.Len(),
		PendingWrites: pending,
	}
	if pending > 0 {
		resp.Status = "degraded"
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(pets services.PetStoreInterface, tasks services.TaskStoreInterface, writers *persistence.Persister) *HealthController {
	return &HealthController{
		pets:      pets,
		tasks:     tasks,
		writers:   writers,
		startTime: time.Now(),
	}
}
