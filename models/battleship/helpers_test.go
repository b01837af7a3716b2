package battleship

import "testing"

// Rows used for the ships of both players. One empty
// row between ships so no two ships touch.
var testShipRows = [...]int{0, 2, 4, 6, 8}

func placeShip(t *testing.T, g *GameSession, player, row, col, size int) Notice {
	t.Helper()

	var n Notice
	for i := 0; i < size; i++ {
		n = g.SelectCell(player, row, col+i)
		if n.Kind == NoticeRejectedInvalidSelection {
			t.Fatalf("placing ship cell rejected\tplayer: %d\trow: %d\tcol: %d", player, row, col+i)
		}
	}
	return n
}

func placeAllShips(t *testing.T, g *GameSession, player int) Notice {
	t.Helper()

	var n Notice
	for i, size := range ShipSizes {
		n = placeShip(t, g, player, testShipRows[i], 0, size)
	}
	return n
}

func newReadyGame(t *testing.T) *GameSession {
	t.Helper()

	g := NewGameSession("")
	placeAllShips(t, g, 0)
	if n := placeAllShips(t, g, 1); n.Kind != NoticePlacementPhaseComplete {
		t.Fatalf("expected notice: %s\tgot: %s", NoticePlacementPhaseComplete, n.Kind)
	}
	return g
}

func newBattleGame(t *testing.T) *GameSession {
	t.Helper()

	g := newReadyGame(t)
	if n := g.BeginBattle(); n.Kind != NoticeBattleStarted {
		t.Fatalf("expected notice: %s\tgot: %s", NoticeBattleStarted, n.Kind)
	}
	return g
}

// Maximal horizontal and vertical runs (length > 1) of ship cells
func shipRuns(b *Board) []int {
	runs := make([]int, 0, len(ShipSizes))

	for row := 0; row < BoardSize; row++ {
		length := 0
		for col := 0; col <= BoardSize; col++ {
			if col < BoardSize && b.Cell(row, col).HasShip {
				length++
				continue
			}
			if length > 1 {
				runs = append(runs, length)
			}
			length = 0
		}
	}

	for col := 0; col < BoardSize; col++ {
		length := 0
		for row := 0; row <= BoardSize; row++ {
			if row < BoardSize && b.Cell(row, col).HasShip {
				length++
				continue
			}
			if length > 1 {
				runs = append(runs, length)
			}
			length = 0
		}
	}
	return runs
}
