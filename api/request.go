package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

// Every incoming valid request has the raw JSON payload.
// The handlers decode it and run one op on the game.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var r Request
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return r
}

// Creates a new game in the manager and enters the
// placement phase for the first player.
func (r Request) HandleCreateGame(gameManager mb.GameManager) (*mb.GameSession, mc.Message[mc.RespCreateGame]) {
	game := gameManager.CreateGame()
	notice := game.Reset()

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), Notice: notice})
	return game, resp
}

func (r Request) HandleResetGame(game *mb.GameSession) mc.Message[mc.RespNotice] {
	resp := mc.NewMessage[mc.RespNotice](mc.CodeResetGame)
	resp.AddPayload(mc.RespNotice{GameUuid: game.Uuid(), Notice: game.Reset()})
	return resp
}

func (r Request) HandleBeginBattle(game *mb.GameSession) mc.Message[mc.RespNotice] {
	resp := mc.NewMessage[mc.RespNotice](mc.CodeBeginBattle)
	resp.AddPayload(mc.RespNotice{GameUuid: game.Uuid(), Notice: game.BeginBattle()})
	return resp
}

func (r Request) HandleSelectCell(game *mb.GameSession) mc.Message[mc.RespNotice] {
	resp := mc.NewMessage[mc.RespNotice](mc.CodeSelectCell)

	var req mc.Message[*mc.ReqSelectCell]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal select cell request")
		return resp
	}
	if req.Payload == nil {
		resp.AddError(cerr.ErrNilPayload().Error(), "select cell request needs player, row and col")
		return resp
	}
	if err := req.Payload.Validate(); err != nil {
		resp.AddError(err.Error(), "invalid select cell request")
		return resp
	}

	notice := game.SelectCell(req.Payload.Player, req.Payload.Row, req.Payload.Col)
	resp.AddPayload(mc.RespNotice{GameUuid: game.Uuid(), Notice: notice})
	return resp
}

func (r Request) HandleChatMessage(game *mb.GameSession) mc.Message[mc.RespChatMessage] {
	resp := mc.NewMessage[mc.RespChatMessage](mc.CodeChatMessage)

	var req mc.Message[*mc.ReqChatMessage]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal chat message request")
		return resp
	}
	if req.Payload == nil {
		resp.AddError(cerr.ErrNilPayload().Error(), "chat message request needs player and text")
		return resp
	}
	if err := req.Payload.Validate(); err != nil {
		resp.AddError(err.Error(), "invalid chat message request")
		return resp
	}

	msg, appended := game.SendChatMessage(req.Payload.Player, req.Payload.Text)
	if !appended {
		resp.AddPayload(mc.RespChatMessage{Appended: false})
		return resp
	}
	resp.AddPayload(mc.RespChatMessage{Appended: true, Message: &msg})
	return resp
}

// Ship positions stay hidden while the battle runs
// since both players look at the same screen
func (r Request) HandleGameState(game *mb.GameSession) mc.Message[mc.RespGameState] {
	snapshot := game.Snapshot()
	if game.Phase() == mb.PhaseBattle {
		snapshot = snapshot.MaskShips()
	}

	resp := mc.NewMessage[mc.RespGameState](mc.CodeGameState)
	resp.AddPayload(mc.RespGameState{State: snapshot})
	return resp
}
