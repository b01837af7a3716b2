package battleship

// Read only view of a game for rendering
type Snapshot struct {
	GameUuid         string               `json:"game_uuid"`
	Phase            string               `json:"phase"`
	ActivePlayer     int                  `json:"active_player"`
	PlacingPlayer    int                  `json:"placing_player"`
	CurrentShipSize  int                  `json:"current_ship_size"`
	CurrentShipIndex int                  `json:"current_ship_index"`
	Winner           int                  `json:"winner"`
	Boards           [PlayersCount][]Cell `json:"boards"`
	Chat             []ChatMessage        `json:"chat"`
}

func (g *GameSession) Snapshot() Snapshot {
	s := Snapshot{
		GameUuid:         g.uuid,
		Phase:            g.Phase().String(),
		ActivePlayer:     g.activePlayer,
		PlacingPlayer:    -1,
		CurrentShipSize:  g.placement.shipSize,
		CurrentShipIndex: g.placement.shipIndex,
		Winner:           g.winner,
		Chat:             g.ChatLog(),
	}
	if g.placingShips {
		s.PlacingPlayer = g.currentPlayer
	}

	for i, b := range g.boards {
		s.Boards[i] = b.Cells()
	}
	return s
}

// Hides the ships that were not hit yet.
// Used once the battle is running.
func (s Snapshot) MaskShips() Snapshot {
	for i, cells := range s.Boards {
		masked := make([]Cell, len(cells))
		for j, c := range cells {
			if !c.Hit {
				c.HasShip = false
			}
			masked[j] = c
		}
		s.Boards[i] = masked
	}
	return s
}
