package battleship

import "fmt"

func statusTurn(player int) string {
	return fmt.Sprintf("%s's turn.", PlayerLabel(player))
}

// Resolves one attack of the active player on the board of target
func (g *GameSession) attack(target, row, col int) Notice {
	if !g.hasGameStarted {
		return newNotice(NoticeIgnored, "")
	}

	if target == g.activePlayer {
		n := newNotice(NoticeRejectedNotYourTurn, "It's not your turn yet!").at(row, col)
		n.NextActivePlayer = g.activePlayer
		return n
	}

	board := g.boards[target]
	c := board.cell(row, col)
	if c.Hit {
		n := newNotice(NoticeRejectedAlreadyHit, "You've already hit this cell. Try again.").at(row, col)
		n.NextActivePlayer = g.activePlayer
		return n
	}

	board.MarkHit(row, col)

	if c.HasShip && board.AllShipsSunk() {
		g.gameOver = true
		g.winner = g.activePlayer

		n := newNotice(NoticeGameOver, fmt.Sprintf("%s wins!", PlayerLabel(g.winner))).at(row, col)
		n.Winner = g.winner
		return n
	}

	g.activePlayer = 1 - g.activePlayer

	kind, word := NoticeMiss, "Miss"
	if c.HasShip {
		kind, word = NoticeHit, "Hit"
	}
	n := newNotice(kind, fmt.Sprintf("%s! %s", word, statusTurn(g.activePlayer))).at(row, col)
	n.NextActivePlayer = g.activePlayer
	return n
}
