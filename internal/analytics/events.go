package analytics

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TrackEvent is a single usage event.
type TrackEvent struct {
	ID         string
	Name       string
	Timestamp  time.Time
	Properties map[string]any
}

const (
	eventStartup  = "server_startup"
	eventToolUsed = "tool_used"
)

// logService is the default Service: it writes events to the structured log
// and never leaves the process. Nothing upstream of the bridge should depend
// on analytics being delivered anywhere.
type logService struct {
	disabled atomic.Bool
}

// NewLogService returns a Service that records events via slog.
func NewLogService() Service {
	return &logService{}
}

func (s *logService) Disable() { s.disabled.Store(true) }
func (s *logService) Enable()  { s.disabled.Store(false) }

func (s *logService) EmitEvent(event TrackEvent) {
	if s.disabled.Load() {
		return
	}
	slog.Debug("analytics event",
		"event_id", event.ID,
		"event", event.Name,
		"properties", event.Properties)
}

func (s *logService) NewStartupEvent(info StartupEventInfo) TrackEvent {
	return newEvent(eventStartup, map[string]any{
		"endpoint":       info.Endpoint,
		"query_tools":    info.QueryTools,
		"mutation_tools": info.MutationTools,
		"transport":      info.Transport,
	})
}

func (s *logService) NewToolsEvent(toolUsed string) TrackEvent {
	return newEvent(eventToolUsed, map[string]any{"tool": toolUsed})
}

func newEvent(name string, properties map[string]any) TrackEvent {
	return TrackEvent{
		ID:         uuid.NewString(),
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	}
}
