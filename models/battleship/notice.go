package battleship

import "fmt"

type NoticeKind uint8

const (
	// Out of phase calls and calls after game over
	NoticeIgnored NoticeKind = iota
	NoticePlacementStarted
	NoticeAccepted
	NoticeRejectedInvalidSelection
	NoticeShipPlaced
	NoticePlacementPhaseComplete
	NoticeBattleStarted
	NoticeHit
	NoticeMiss
	NoticeGameOver
	NoticeRejectedNotYourTurn
	NoticeRejectedAlreadyHit
)

var noticeKindNames = map[NoticeKind]string{
	NoticeIgnored:                  "ignored",
	NoticePlacementStarted:         "placement_started",
	NoticeAccepted:                 "accepted",
	NoticeRejectedInvalidSelection: "rejected_invalid_selection",
	NoticeShipPlaced:               "ship_placed",
	NoticePlacementPhaseComplete:   "placement_phase_complete",
	NoticeBattleStarted:            "battle_started",
	NoticeHit:                      "hit",
	NoticeMiss:                     "miss",
	NoticeGameOver:                 "game_over",
	NoticeRejectedNotYourTurn:      "rejected_not_your_turn",
	NoticeRejectedAlreadyHit:       "rejected_already_hit",
}

func (k NoticeKind) String() string {
	name, prs := noticeKindNames[k]
	if !prs {
		return fmt.Sprintf("notice(%d)", uint8(k))
	}
	return name
}

// Notice describes the outcome of one core operation.
// Fields that do not apply to the kind are zero; player
// indexes use -1 for "not applicable".
type Notice struct {
	Kind NoticeKind `json:"kind"`

	Row int `json:"row"`
	Col int `json:"col"`

	// Placement
	PlacingPlayer int `json:"placing_player"`
	NextShipSize  int `json:"next_ship_size"`

	// Battle
	NextActivePlayer int `json:"next_active_player"`
	Winner           int `json:"winner"`

	Status string `json:"status"`
}

func newNotice(kind NoticeKind, status string) Notice {
	return Notice{
		Kind:             kind,
		PlacingPlayer:    -1,
		NextActivePlayer: -1,
		Winner:           -1,
		Status:           status,
	}
}

func (n Notice) at(row, col int) Notice {
	n.Row = row
	n.Col = col
	return n
}

// Players are 0 and 1 internally and
// "Player 1" and "Player 2" for humans
func PlayerLabel(player int) string {
	return fmt.Sprintf("Player %d", player+1)
}
