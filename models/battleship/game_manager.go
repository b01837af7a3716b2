package battleship

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

type GameManager interface {
	CreateGame() *GameSession
	GetGame(gameUuid string) (*GameSession, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

type BattleshipGameManager struct {
	games map[string]*GameSession
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*GameSession, 10),
	}
}

func (bgm *BattleshipGameManager) CreateGame() *GameSession {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	// Six chars are short enough to read out loud,
	// so collisions are possible
	gameUuid := uuid.NewString()[:6]
	for {
		if _, prs := bgm.games[gameUuid]; !prs {
			break
		}
		gameUuid = uuid.NewString()[:6]
	}

	game := NewGameSession(gameUuid)
	bgm.games[gameUuid] = game
	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*GameSession, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
