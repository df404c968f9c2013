package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/registry"
	"github.com/GriffinCanCode/horoscopefs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/horoscopefs/internal/infrastructure/resilience"
	"github.com/gin-gonic/gin"
)

// Session describes the running mount
type Session struct {
	ID         string    `json:"id"`
	Mountpoint string    `json:"mountpoint"`
	SunSign    string    `json:"sun_sign"`
	MoonSign   string    `json:"moon_sign"`
	Started    time.Time `json:"started"`
}

// BreakerStates reports the circuit breaker of every upstream host
type BreakerStates func() map[string]resilience.State

// Handlers contains all status HTTP handlers. None of them warms a Source.
type Handlers struct {
	session  Session
	registry *registry.Registry
	breakers BreakerStates
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(
	session Session,
	registry *registry.Registry,
	breakers BreakerStates,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		session:  session,
		registry: registry,
		breakers: breakers,
		metrics:  metrics,
	}
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "horoscopefs",
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"session":        h.session,
		"sources_warmed": len(h.registry.Warmed()),
		"sources_total":  horoscope.NumSources,
	})
}

type contentStatus struct {
	Type string `json:"type"`
	Size int    `json:"size"`
}

type sourceStatus struct {
	Name    string          `json:"name"`
	Warm    bool            `json:"warm"`
	Content []contentStatus `json:"content,omitempty"`
}

func (h *Handlers) sourceStatus(source horoscope.Source) sourceStatus {
	status := sourceStatus{Name: source.String()}

	cached, ok := h.registry.Peek(source)
	if !ok {
		return status
	}

	status.Warm = true
	for _, t := range horoscope.ContentTypes() {
		status.Content = append(status.Content, contentStatus{Type: t.String(), Size: cached.Len(t)})
	}
	return status
}

// ListSources lists every Source with the sizes of its cached content
func (h *Handlers) ListSources(c *gin.Context) {
	sources := make([]sourceStatus, 0, horoscope.NumSources)
	for _, source := range horoscope.Sources() {
		sources = append(sources, h.sourceStatus(source))
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": sources,
	})
}

// GetSource reports one Source
func (h *Handlers) GetSource(c *gin.Context) {
	source, ok := horoscope.ParseSource(c.Param("source"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source"})
		return
	}

	c.JSON(http.StatusOK, h.sourceStatus(source))
}

// ListBreakers reports the circuit breaker state of every contacted host
func (h *Handlers) ListBreakers(c *gin.Context) {
	states := make(map[string]string)
	if h.breakers != nil {
		for host, state := range h.breakers() {
			states[host] = state.String()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"breakers": states,
	})
}

// MetricsSnapshot returns the session totals as JSON
func (h *Handlers) MetricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
