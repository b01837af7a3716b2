package battleship

import (
	"time"

	"github.com/google/uuid"
)

const PlayersCount = 2

type Phase uint8

const (
	PhasePlacement Phase = iota
	// Both players placed their ships, battle not started yet
	PhaseReady
	PhaseBattle
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseReady:
		return "ready"
	case PhaseBattle:
		return "battle"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// GameSession holds every piece of state of one hot seat game.
// It is not safe for concurrent use; a single caller feeds it
// one event at a time.
type GameSession struct {
	uuid      string
	createdAt time.Time

	boards [PlayersCount]*Board

	activePlayer      int
	currentPlayer     int
	winner            int
	gameOver          bool
	hasGameStarted    bool
	placingShips      bool
	placementComplete bool

	placement placementSession
	chat      []ChatMessage
}

func NewGameSession(gameUuid string) *GameSession {
	if gameUuid == "" {
		gameUuid = uuid.NewString()[:6]
	}

	g := &GameSession{
		uuid:      gameUuid,
		createdAt: time.Now(),
		chat:      make([]ChatMessage, 0, 10),
		placement: placementSession{cells: make([]Coordinates, 0, ShipSizes[0])},
	}
	g.Reset()
	return g
}

func (g *GameSession) Uuid() string {
	return g.uuid
}

func (g *GameSession) CreatedAt() time.Time {
	return g.createdAt
}

// Clears boards, turn and phase and re-enters the
// placement phase for the first player. Chat is kept.
func (g *GameSession) Reset() Notice {
	g.boards = [PlayersCount]*Board{NewBoard(0), NewBoard(1)}
	g.activePlayer = 0
	g.winner = -1
	g.gameOver = false
	g.hasGameStarted = false
	g.placingShips = false
	g.placementComplete = false
	g.placement.shipIndex = 0
	g.placement.clear()

	n := g.startPlacingShips(0)
	n.Kind = NoticePlacementStarted
	return n
}

func (g *GameSession) Phase() Phase {
	switch {
	case g.gameOver:
		return PhaseOver
	case g.hasGameStarted:
		return PhaseBattle
	case g.placementComplete:
		return PhaseReady
	default:
		return PhasePlacement
	}
}

// Player whose turn it is in the battle phase
func (g *GameSession) ActivePlayer() int {
	return g.activePlayer
}

// Player placing ships in the placement phase
func (g *GameSession) PlacingPlayer() int {
	return g.currentPlayer
}

func (g *GameSession) CurrentShipSize() int {
	return g.placement.shipSize
}

func (g *GameSession) CurrentShipIndex() int {
	return g.placement.shipIndex
}

// Cells selected so far for the ship being placed
func (g *GameSession) CurrentCells() []Coordinates {
	cells := make([]Coordinates, len(g.placement.cells))
	copy(cells, g.placement.cells)
	return cells
}

func (g *GameSession) IsGameOver() bool {
	return g.gameOver
}

// Returns -1 until the game is over
func (g *GameSession) Winner() int {
	return g.winner
}

func (g *GameSession) Board(player int) *Board {
	if !isValidPlayer(player) {
		return nil
	}
	return g.boards[player]
}

// Flips the game to the battle phase. Only allowed once
// both players have placed all their ships.
func (g *GameSession) BeginBattle() Notice {
	if g.Phase() != PhaseReady {
		return newNotice(NoticeIgnored, "")
	}

	g.placingShips = false
	g.activePlayer = 0
	g.hasGameStarted = true

	n := newNotice(NoticeBattleStarted, "Game has started! "+statusTurn(g.activePlayer))
	n.NextActivePlayer = g.activePlayer
	return n
}

// Handles one selection of the cell at row and col on the board of
// the player. During placement it is a ship cell, during the battle
// it is an attack on that board.
func (g *GameSession) SelectCell(player, row, col int) Notice {
	if g.gameOver {
		return newNotice(NoticeIgnored, "")
	}
	if !isValidPlayer(player) || !g.boards[player].InBounds(row, col) {
		return newNotice(NoticeIgnored, "")
	}
	if !g.placingShips && !g.hasGameStarted {
		return newNotice(NoticeIgnored, "")
	}

	if g.placingShips {
		return g.handleShipPlacement(player, row, col)
	}
	return g.attack(player, row, col)
}

func isValidPlayer(player int) bool {
	return player >= 0 && player < PlayersCount
}
