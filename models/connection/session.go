package connection

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

type Session struct {
	id        string
	conn      *websocket.Conn
	createdAt time.Time
	logger    *zap.Logger
}

func NewSession(id string, conn *websocket.Conn, logger *zap.Logger) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		logger:    logger.With(zap.String("session_id", id)),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) remoteAddr() string {
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		s.logger.Warn("timeout error", zap.Error(err))
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		s.logger.Warn("high server load/traffic error", zap.Error(err))
		return ConnLoopRetry
	}

	// Both players share one browser tab, so there is
	// nobody to wait for when it goes away abnormally
	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		s.logger.Info("close error", zap.Error(err))
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error("critical error", zap.Error(err))
		return ConnLoopBreak
	}

	/*
		The client is probably not the browser page.
		CloseUnsupportedData (1003): binary frame to a text only server.
		CloseInvalidFramePayloadData (1007): text frame that is not valid UTF-8.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		s.logger.Warn("non-critical error", zap.Error(err))
		return ConnLoopBreak
	}

	s.logger.Error("unexpected error", zap.Error(err))
	return ConnLoopBreak
}

// Writes to the connection of that session. Retries
// with a linear back off on timeouts.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				s.logger.Warn("writing to ws failed; retrying", zap.String("remote_addr", s.remoteAddr()), zap.Uint8("retry", retries))
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			s.logger.Error("max retries reached for writing to ws", zap.String("remote_addr", s.remoteAddr()), zap.Error(err))
			return NewConnErr(ConnLoopBreak).AddDesc(err.Error())

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// Decides what the read loop does after a failed read.
// `ConnLoopBreak` ends the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			s.logger.Warn("failed to read from ws; retrying", zap.String("remote_addr", s.remoteAddr()), zap.Uint8("retry", retries))
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		s.logger.Info("break ws conn loop", zap.String("remote_addr", s.remoteAddr()), zap.Error(err))
		return ConnLoopBreak
	}
}

var _ ConnectionHandler = (*Session)(nil)
