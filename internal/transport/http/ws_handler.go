package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"codequiz-service/internal/app"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler runs live quiz attempts over a websocket.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option *int `json:"option"`
}

type navigatePayload struct {
	Route string `json:"route"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS starts an attempt for the category in the path and wires the socket to it.
// Unknown categories are rejected before the upgrade.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	clientID := r.URL.Query().Get("clientId")

	attempt, err := h.service.Start(r.Context(), category, app.SlotFor(clientID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// Closing the attempt cancels its countdown; every exit path below runs it.
	defer attempt.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("attempt_id", attempt.ID()), zap.String("client_id", clientID))

	updates, cancel := attempt.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	enqueue := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		case <-closeSignals:
			return false
		}
	}

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				if snap.Completion == nil {
					if !enqueue(outboundMessage[any]{Type: "snapshot", Payload: snap}) {
						return
					}
					continue
				}
				if !enqueue(outboundMessage[any]{Type: "completed", Payload: snap.Completion}) {
					return
				}
				timer := time.NewTimer(snap.Completion.RedirectAfter)
				select {
				case <-timer.C:
					enqueue(outboundMessage[any]{Type: "navigate", Payload: navigatePayload{Route: snap.Completion.Route}})
				case <-closeSignals:
					timer.Stop()
				}
				return
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.apply(attempt, inbound); err != nil {
			if !enqueue(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}) {
				break
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

var errUnsupportedMessage = errors.New("unsupported message type")

func (h *WSHandler) apply(attempt *app.Attempt, inbound inboundMessage) error {
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == nil {
			return errors.New("invalid select payload")
		}
		return attempt.SelectAnswer(*payload.Option)
	case "next":
		return attempt.Advance()
	case "previous":
		return attempt.Retreat()
	default:
		return errUnsupportedMessage
	}
}
