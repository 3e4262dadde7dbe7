package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/events"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/response"
	"github.com/stemsi/exstem-scheduler/internal/validator"
	ws "github.com/stemsi/exstem-scheduler/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ScheduleWSHandler streams the schedule changes of one term.
type ScheduleWSHandler struct {
	subscriber events.Subscriber
	log        zerolog.Logger
	upgrader   websocket.Upgrader
}

// NewScheduleWSHandler creates a new ScheduleWSHandler.
func NewScheduleWSHandler(subscriber events.Subscriber, log zerolog.Logger, allowedOrigins []string) *ScheduleWSHandler {
	return &ScheduleWSHandler{
		subscriber: subscriber,
		log:        log.With().Str("component", "schedule_ws_handler").Logger(),
		upgrader:   buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/schedule?term=2025/2
// Pushes section.created, section.updated and section.deactivated events.
func (h *ScheduleWSHandler) Stream(c *gin.Context) {
	var q model.ScheduleStreamQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	term := model.Term(q.Term)

	ctx := c.Request.Context()
	changes, cancel, err := h.subscriber.Subscribe(ctx, term)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("term", string(term)).Logger()
	wsLog.Info().Msg("Schedule subscriber connected")

	// Only this goroutine writes to conn; the reader hands pings over.
	pings := make(chan struct{}, 1)
	closed := make(chan struct{})
	go h.readLoop(conn, wsLog, pings, closed)

	if err := ws.WriteTyped(conn, ws.SubscribedResponse{Event: ws.EventSubscribed, Term: string(term)}); err != nil {
		return
	}

	ticker := time.NewTicker(ws.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			wsLog.Debug().Msg("Connection closed")
			return
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				_ = ws.WriteError(conn, "event stream closed")
				return
			}
			if err := ws.WriteTyped(conn, ws.ScheduleResponse{Event: ws.EventSchedule, Change: change}); err != nil {
				wsLog.Warn().Err(err).Msg("Failed to push schedule event")
				return
			}
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *ScheduleWSHandler) readLoop(conn *websocket.Conn, log zerolog.Logger, pings chan<- struct{}, closed chan<- struct{}) {
	defer close(closed)
	ws.KeepAlive(conn)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			select {
			case pings <- struct{}{}:
			default:
			}
		default:
			log.Debug().Str("action", string(msg.Action)).Msg("Ignoring unknown action")
		}
	}
}
