package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tooling only; restrict if ever exposed
	},
}

// WebSocket message types from client.
const (
	wsMsgJudge = "judge"
)

// WebSocket message types to client, emitted in pipeline order.
const (
	wsMsgSummarized = "summarized"
	wsMsgInvoking   = "invoking"
	wsMsgDecision   = "decision"
	wsMsgSkipped    = "skipped"
	wsMsgError      = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsJudge is the payload for "judge" messages.
type wsJudge struct {
	Diff string `json:"diff"`
}

// handleWebSocket streams pipeline stages to the client as a judgment
// runs, so editors can show progress during the model call.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			wsSend(conn, wsMsgError, map[string]string{"error": "invalid message: " + err.Error()})
			continue
		}

		if msg.Type != wsMsgJudge {
			wsSend(conn, wsMsgError, map[string]string{"error": "unknown message type: " + msg.Type})
			continue
		}

		var req wsJudge
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			wsSend(conn, wsMsgError, map[string]string{"error": "invalid judge payload: " + err.Error()})
			continue
		}

		s.streamJudgment(conn, r, req.Diff)
	}
}

func (s *Server) streamJudgment(conn *websocket.Conn, r *http.Request, rawDiff string) {
	if len(rawDiff) > s.maxBytes {
		wsSend(conn, wsMsgError, map[string]string{"error": "diff exceeds maximum size"})
		return
	}

	rawDiff = diff.NormalizeLineEndings(rawDiff)
	wsSend(conn, wsMsgSummarized, diff.Summarize(rawDiff))
	wsSend(conn, wsMsgInvoking, nil)

	out, err := guard.Run(r.Context(), rawDiff, s.judge)
	if err != nil {
		wsSend(conn, wsMsgError, map[string]string{"error": err.Error()})
		return
	}
	if out.Skipped {
		wsSend(conn, wsMsgSkipped, map[string]string{"reason": out.SkipReason})
		return
	}

	resp := judgeResponse{
		Action: out.Action.String(),
		Stats:  out.Stats,
		Empty:  out.Empty,
	}
	if out.Decision != nil {
		resp.Risk = string(out.Decision.Risk)
		resp.Issues = out.Decision.Issues
		resp.Summary = out.Decision.Summary
	}
	wsSend(conn, wsMsgDecision, resp)
}

func wsSend(conn *websocket.Conn, msgType string, data any) {
	msg := wsMessage{Type: msgType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Printf("websocket marshal: %v", err)
			return
		}
		msg.Data = raw
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("websocket write: %v", err)
	}
}
