package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"websafe-game-service/internal/app"
	"websafe-game-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
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

type startPayload struct {
	Difficulty domain.Difficulty `json:"difficulty"`
}

type answerPayload struct {
	Value json.RawMessage `json:"value"`
}

type answerResult struct {
	ScenarioID string `json:"scenarioId"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	TotalScore int    `json:"totalScore"`
	Feedback   string `json:"feedback,omitempty"`
	Extra      string `json:"additionalInfo,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game
// use cases. One connection drives one session through
// start → (answer → advance)* → results, with session snapshots pushed
// after every mutation.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.service.Attach(r.Context(), sessionID)

	updates, cancel, err := h.service.Subscribe(r.Context(), sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()
	defer h.service.End(r.Context(), sessionID)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; gorilla connections do not allow concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "session", Payload: update}:
				case <-closeSignals:
					return
				}
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
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid start payload")
				continue
			}
			if _, err := h.service.Start(r.Context(), sessionID, payload.Difficulty); err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			h.sendCurrentScenario(r.Context(), sessionID, send)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			var value any
			if err := json.Unmarshal(payload.Value, &value); err != nil {
				send <- errorMessage("invalid answer value")
				continue
			}

			// The scenario is needed before submission for its feedback text.
			scenario, _, err := h.service.CurrentScenario(r.Context(), sessionID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			answer, snap, err := h.service.Submit(r.Context(), sessionID, value)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			feedback := scenario.IncorrectFeedback
			if answer.IsCorrect {
				feedback = scenario.CorrectFeedback
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: answerResult{
				ScenarioID: answer.ScenarioID,
				Correct:    answer.IsCorrect,
				Awarded:    answer.Awarded,
				TotalScore: snap.Score,
				Feedback:   feedback,
				Extra:      scenario.AdditionalInfo,
			}}
		case "advance":
			snap, err := h.service.Advance(r.Context(), sessionID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			if snap.Phase == domain.PhasePlaying {
				h.sendCurrentScenario(r.Context(), sessionID, send)
			}
		case "restart":
			if _, err := h.service.Restart(r.Context(), sessionID); err != nil {
				send <- errorMessage(err.Error())
			}
		case "state":
			snap, err := h.service.Snapshot(r.Context(), sessionID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "session", Payload: snap}
			if snap.Phase == domain.PhasePlaying {
				h.sendCurrentScenario(r.Context(), sessionID, send)
			}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// sendCurrentScenario pushes the active scenario with its answer key
// stripped; clients never receive grading material.
func (h *WSHandler) sendCurrentScenario(ctx context.Context, sessionID string, send chan<- outboundMessage[any]) {
	scenario, ok, err := h.service.CurrentScenario(ctx, sessionID)
	if err != nil || !ok {
		return
	}
	send <- outboundMessage[any]{Type: "scenario", Payload: scenario.WithoutKey()}
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
