package connection

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

const defaultCleanupInterval = time.Minute * 30

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	CleanupPeriodically(stop <-chan struct{})
	CountSessions() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	logger          *zap.Logger
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type Option func(*BattleshipSessionManager)

func WithCleanupInterval(interval time.Duration) Option {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = interval
	}
}

func NewBattleshipSessionManager(logger *zap.Logger, opts ...Option) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

// The session ID is URL compatible so the page can pass it around
func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn, bsm.logger)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there are no dangling sessions, sessions
// older than the cleanup interval are marked as stale and
// removed. Runs until stop is closed.
func (bsm *BattleshipSessionManager) CleanupPeriodically(stop <-chan struct{}) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			bsm.cleanupStale()
		}
	}
}

func (bsm *BattleshipSessionManager) cleanupStale() {
	assumedClosedConns := 10

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	toDelete := make([]string, 0, assumedClosedConns)
	for id, session := range bsm.sessions {
		if time.Since(session.createdAt) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(bsm.sessions, id)
	}
	bsm.logger.Info("cleaned up stale sessions", zap.Int("removed", len(toDelete)), zap.Int("remaining", len(bsm.sessions)))
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, err
		}
	}
}

// Returns an invalid code if the payload is not JSON
// or does not carry the code field
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, cerr.ErrSignalAbsent()
	}

	return *signal.Code, nil
}
