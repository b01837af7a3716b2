package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame
	CodeResetGame
	CodeSelectCell
	CodeBeginBattle
	CodeChatMessage
	CodeGameState
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// a game op arrived before CodeCreateGame
	CodeGameNotCreated
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
