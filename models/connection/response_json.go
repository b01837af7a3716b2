package connection

import (
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string    `json:"game_uuid"`
	Notice   mb.Notice `json:"notice"`
}

type RespNotice struct {
	GameUuid string    `json:"game_uuid"`
	Notice   mb.Notice `json:"notice"`
}

type RespChatMessage struct {
	Appended bool            `json:"appended"`
	Message  *mb.ChatMessage `json:"message,omitempty"`
}

type RespGameState struct {
	State mb.Snapshot `json:"state"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
