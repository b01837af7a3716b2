package battleship

import "fmt"

const statusInvalidCell = "That's an invalid cell. Please select cells that are next to each other."

// The ship currently being placed. Cells are kept in
// the order the player selected them.
type placementSession struct {
	shipIndex int
	shipSize  int
	cells     []Coordinates
}

func (ps *placementSession) clear() {
	ps.cells = ps.cells[:0]
}

func statusPlaceShip(player, size int) string {
	return fmt.Sprintf("%s: Place your ship of size %d cells.", PlayerLabel(player), size)
}

// Starts (or continues) placement for the player at the
// current ship index. When the ship list is exhausted the
// turn moves to the next player or the placement phase ends.
func (g *GameSession) startPlacingShips(player int) Notice {
	g.currentPlayer = player

	if g.placement.shipIndex < len(ShipSizes) {
		g.placement.shipSize = ShipSizes[g.placement.shipIndex]
		g.placingShips = true

		n := newNotice(NoticeShipPlaced, statusPlaceShip(player, g.placement.shipSize))
		n.PlacingPlayer = player
		n.NextShipSize = g.placement.shipSize
		return n
	}

	g.placingShips = false
	g.placement.shipIndex = 0
	g.placement.shipSize = 0

	if player == 0 {
		n := g.startPlacingShips(1)
		n.Status = fmt.Sprintf("%s has finished. %s", PlayerLabel(0), n.Status)
		return n
	}

	g.placementComplete = true
	return newNotice(NoticePlacementPhaseComplete, "Both players have placed their ships. Start the game to begin!")
}

func (g *GameSession) handleShipPlacement(player, row, col int) Notice {
	if player != g.currentPlayer {
		return g.rejectSelection(row, col)
	}

	board := g.boards[g.currentPlayer]
	c := board.cell(row, col)
	if c.HasShip || c.Placed || !g.validateAdjacentCell(row, col) {
		return g.rejectSelection(row, col)
	}

	g.placement.cells = append(g.placement.cells, NewCoordinates(row, col))
	c.Placed = true

	if len(g.placement.cells) < g.placement.shipSize {
		n := newNotice(NoticeAccepted, statusPlaceShip(g.currentPlayer, g.placement.shipSize)).at(row, col)
		n.PlacingPlayer = g.currentPlayer
		n.NextShipSize = g.placement.shipSize
		return n
	}

	if !g.validateShipPlacement(g.placement.cells) {
		return g.rejectSelection(row, col)
	}
	return g.placeCurrentShip().at(row, col)
}

// Clears the whole in-progress ship, not only the offending cell
func (g *GameSession) rejectSelection(row, col int) Notice {
	g.resetCurrentShipPlacement()

	n := newNotice(NoticeRejectedInvalidSelection, statusInvalidCell).at(row, col)
	n.PlacingPlayer = g.currentPlayer
	n.NextShipSize = g.placement.shipSize
	return n
}

func (g *GameSession) resetCurrentShipPlacement() {
	board := g.boards[g.currentPlayer]
	for _, coords := range g.placement.cells {
		board.cell(coords.Row, coords.Col).Placed = false
	}
	g.placement.clear()
}

// The first cell is free. The second one fixes the orientation
// and every later one must follow it. Each new cell must touch
// the most recently selected one.
func (g *GameSession) validateAdjacentCell(row, col int) bool {
	cells := g.placement.cells
	if len(cells) == 0 {
		return true
	}

	first := cells[0]
	if len(cells) == 1 {
		isHorizontal := first.Row == row
		isVertical := first.Col == col
		if isHorizontal == isVertical {
			return false
		}
	} else {
		second := cells[1]
		isHorizontal := first.Row == second.Row
		isVertical := first.Col == second.Col

		if isHorizontal && first.Row != row {
			return false
		}
		if isVertical && first.Col != col {
			return false
		}
	}

	last := cells[len(cells)-1]
	return abs(last.Row-row)+abs(last.Col-col) == 1
}

// Checks the complete selection again before committing it.
// Per cell checks already cover this; it guards the board
// invariant in case they ever drift apart.
func (g *GameSession) validateShipPlacement(cells []Coordinates) bool {
	if len(cells) != g.placement.shipSize {
		return false
	}

	first := cells[0]
	sameRow, sameCol := true, true
	for _, c := range cells {
		sameRow = sameRow && c.Row == first.Row
		sameCol = sameCol && c.Col == first.Col
	}
	if !sameRow && !sameCol {
		return false
	}

	board := g.boards[g.currentPlayer]
	for _, c := range cells {
		if !board.InBounds(c.Row, c.Col) || board.Cell(c.Row, c.Col).HasShip {
			return false
		}
	}
	return true
}

func (g *GameSession) placeCurrentShip() Notice {
	board := g.boards[g.currentPlayer]
	for _, c := range g.placement.cells {
		board.MarkShip(c.Row, c.Col)
	}

	g.resetCurrentShipPlacement()
	g.placement.shipIndex++
	return g.startPlacingShips(g.currentPlayer)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
