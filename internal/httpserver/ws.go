package httpserver

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/puzzle"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsMessage is sent from server to client. Type is "progress", "solution" or "error".
type wsMessage struct {
	Type      string    `json:"type"`
	Level     int       `json:"level,omitempty"`
	NumStates int       `json:"num_states,omitempty"`
	Solution  *solveRes `json:"solution,omitempty"`
	Error     *errorRes `json:"error,omitempty"`
}

// handleSolveWS reads solve requests from the connection and answers each one with its
// search progress followed by the solution or an error.
func (s *Server) handleSolveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		_, msgReader, err := conn.NextReader()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		req, err := puzzle.ReadRequest(msgReader)
		if err != nil {
			if err := conn.WriteJSON(errorMessage(err)); err != nil {
				log.Debug().Err(err).Msg("websocket write")
				return
			}
			continue
		}

		var writeErr error
		progress := func(level, numStates int) {
			if writeErr == nil {
				writeErr = conn.WriteJSON(wsMessage{Type: "progress", Level: level, NumStates: numStates})
			}
		}

		msg := wsMessage{Type: "solution"}
		res, err := s.solve(ctx, req, progress)
		if err != nil {
			msg = errorMessage(err)
		} else {
			msg.Solution = res
		}
		if writeErr != nil {
			log.Debug().Err(writeErr).Msg("websocket write")
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Msg("websocket write")
			return
		}
	}
}

func errorMessage(err error) wsMessage {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("websocket solve")
	}
	return wsMessage{Type: "error", Error: &errorRes{Msg: "error", Error: code, Detail: err.Error()}}
}
