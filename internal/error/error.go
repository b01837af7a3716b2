package error

import "fmt"

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameNotCreated() error {
	return fmt.Errorf("no game is attached to this session; create a game first")
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id was not found, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil, id: %s", sessionId)
}

func ErrNilPayload() error {
	return fmt.Errorf("the payload is nil or missing")
}

func ErrInvalidPlayer(player int) error {
	return fmt.Errorf("player must be 0 or 1\tplayer: %d", player)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("stage must be either dev or prod, got: %s", stage)
}

func ErrSignalAbsent() error {
	return fmt.Errorf("incoming req payload must contain 'code' field")
}
