package connection

import (
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
)

type ReqSelectCell struct {
	Player int `json:"player"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

func (r ReqSelectCell) Validate() error {
	if r.Player < 0 || r.Player >= mb.PlayersCount {
		return cerr.ErrInvalidPlayer(r.Player)
	}
	if r.Row < 0 || r.Row >= mb.BoardSize || r.Col < 0 || r.Col >= mb.BoardSize {
		return cerr.ErrXorYOutOfGridBound(r.Row, r.Col)
	}
	return nil
}

type ReqChatMessage struct {
	Player int    `json:"player"`
	Text   string `json:"text"`
}

func (r ReqChatMessage) Validate() error {
	if r.Player < 0 || r.Player >= mb.PlayersCount {
		return cerr.ErrInvalidPlayer(r.Player)
	}
	return nil
}
