package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// larger snapshots are written in several frames
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
	logger         *zap.Logger
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	dbManager sqlc.DbManager,
	logger *zap.Logger,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      dbManager.Analytics,
		logger:         logger,
	}

	rp.ipnet = rp.serverIpNet()
	return rp
}

// Returns the first non loopback IPv4 of this host. Falls back
// to the loopback address when there is none.
func (rp RequestProcessor) serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		rp.logger.Warn("failed to list interfaces; using loopback", zap.Error(err))
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rp.logger.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	session := rp.sessionManager.GenerateNewSession(conn)
	rp.logger.Info("a new connection established", zap.String("remote_addr", conn.RemoteAddr().String()), zap.String("session_id", session.Id()))
	rp.processSessionRequests(session)
}

func (rp RequestProcessor) recordAnalytics(record func(context.Context, pqtype.Inet) error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// for now not killing the game for it
	if err := record(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		rp.logger.Warn("failed to record analytics", zap.Error(err))
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame *mb.GameSession
		sessionId   = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		rp.logger.Info("session terminated", zap.String("session_id", sessionId))
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must be json with a 'code' field")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		if sessionGame == nil && isGameCode(code) {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeGameNotCreated)
			msg.AddError(cerr.ErrGameNotCreated().Error(), "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		var respMsg interface{}

		switch code {
		// A session drives one game at a time. Creating
		// another one drops the previous game.
		case mc.CodeCreateGame:
			if sessionGame != nil {
				rp.gameManager.TerminateGame(sessionGame.Uuid())
			}
			rp.recordAnalytics(rp.analytics.IncrementGamesCreatedCount)

			game, msg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			sessionGame = game
			respMsg = msg
			rp.logger.Info("game created", zap.String("session_id", sessionId), zap.String("game_uuid", game.Uuid()))

		case mc.CodeResetGame:
			respMsg = NewRequest(payload).HandleResetGame(sessionGame)

		case mc.CodeBeginBattle:
			respMsg = NewRequest(payload).HandleBeginBattle(sessionGame)

		case mc.CodeSelectCell:
			msg := NewRequest(payload).HandleSelectCell(sessionGame)
			if msg.Error == nil && msg.Payload.Notice.Kind == mb.NoticeGameOver {
				rp.recordAnalytics(rp.analytics.IncrementGamesFinishedCount)
				rp.logger.Info("game over", zap.String("game_uuid", sessionGame.Uuid()), zap.Int("winner", msg.Payload.Notice.Winner))
			}
			respMsg = msg

		case mc.CodeChatMessage:
			respMsg = NewRequest(payload).HandleChatMessage(sessionGame)

		case mc.CodeGameState:
			respMsg = NewRequest(payload).HandleGameState(sessionGame)

		default:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", "invalid code in the incoming payload")
			respMsg = msg
		}

		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}

// Codes that act on the game of the session
func isGameCode(code uint8) bool {
	switch code {
	case mc.CodeResetGame, mc.CodeBeginBattle, mc.CodeSelectCell, mc.CodeChatMessage, mc.CodeGameState:
		return true
	default:
		return false
	}
}
