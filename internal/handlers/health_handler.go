package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	prefix  string
	started time.Time
}

func NewHealthHandler(db Pinger, prefix string) *HealthHandler {
	return &HealthHandler{db: db, prefix: prefix, started: time.Now()}
}

type docLinks struct {
	Explorer string `json:"explorer"`
	Spec     string `json:"spec"`
	Info     string `json:"info"`
}

type healthResponse struct {
	Status        string   `json:"status"`
	Timestamp     string   `json:"timestamp"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	DB            string   `json:"db"`
	Docs          docLinks `json:"docs"`
}

type infoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Resources []string `json:"resources"`
	Docs      docLinks `json:"docs"`
}

// Check reports liveness. A failing database degrades the status but the
// process itself still answers 200.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status, dbStatus := "ok", "ok"
	if err := h.db.Ping(c.UserContext()); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.OK(healthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		DB:            dbStatus,
		Docs:          h.links(),
	}))
}

func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.OK(infoResponse{
		Name:      "Storefront API",
		Version:   Version,
		Resources: []string{"products", "categories", "cart", "auth"},
		Docs:      h.links(),
	}))
}

func (h *HealthHandler) links() docLinks {
	return docLinks{
		Explorer: h.prefix + "/docs/index.html",
		Spec:     h.prefix + "/docs/doc.json",
		Info:     h.prefix,
	}
}
