package analytics

//go:generate mockgen -destination=mocks/mock_analytics.go -package=analytics_mocks github.com/graphbridge/graphql-mcp/internal/analytics Service

// Service emits usage events for the bridge. Implementations must be safe
// for concurrent use: tool handlers emit from whatever goroutine the
// transport drives them on.
type Service interface {
	Disable()
	Enable()
	EmitEvent(event TrackEvent)
	NewStartupEvent(info StartupEventInfo) TrackEvent
	NewToolsEvent(toolUsed string) TrackEvent
}

// StartupEventInfo captures what was synthesized at startup.
type StartupEventInfo struct {
	Endpoint      string
	QueryTools    int
	MutationTools int
	Transport     string
}
