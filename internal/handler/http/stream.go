package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/sse"
)

type StreamHandler interface {
	Roster(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewStreamHandler(hub *sse.Hub) StreamHandler {
	return &streamHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// Roster streams duty events to the dashboard as server-sent events.
func (h *streamHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rc := http.NewResponseController(w)
	// streams outlive the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicRoster)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", session.UserID)
	if err := rc.Flush(); err != nil {
		slog.Error("roster stream flush error", "error", err)
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("roster stream encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			_ = rc.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			_ = rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
