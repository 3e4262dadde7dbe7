package websocket

import "github.com/stemsi/exstem-scheduler/internal/events"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client message shape on the schedule stream.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSubscribed Event = "subscribed"
	EventSchedule   Event = "schedule"
	EventError      Event = "error"
	EventPong       Event = "pong"
)

type SubscribedResponse struct {
	Event Event  `json:"event"`
	Term  string `json:"term"`
}

// ScheduleResponse wraps one schedule change.
type ScheduleResponse struct {
	Event  Event        `json:"event"`
	Change events.Event `json:"change"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
