package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-hotseat/api"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 10 * time.Second,
}

type testServer struct {
	wsUrl       string
	rp          api.RequestProcessor
	gameManager *mb.BattleshipGameManager
}

func newTestServer(t *testing.T, dbManager sqlc.DbManager) testServer {
	t.Helper()

	logger := zap.NewNop()
	bsm := mc.NewBattleshipSessionManager(logger)
	bgm := mb.NewBattleshipGameManager()
	rp := api.NewRequestProcessor(bsm, bgm, dbManager, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testServer{
		wsUrl:       "ws" + strings.TrimPrefix(server.URL, "http") + "/battleship",
		rp:          rp,
		gameManager: bgm,
	}
}

// Dials the server and reads the session id message
func (ts testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	conn, _, err := dialer.Dial(ts.wsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	var respSessionId mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&respSessionId); err != nil {
		t.Fatal(err)
	}
	if respSessionId.Code != mc.CodeSessionID || respSessionId.Payload.SessionID == "" {
		t.Fatalf("expected session id message\tgot: %+v", respSessionId)
	}
	return conn
}

func roundTrip[K any](t *testing.T, conn *websocket.Conn, req interface{}) mc.Message[K] {
	t.Helper()

	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[K]
	if err := conn.SetReadDeadline(time.Now().Add(time.Second * 5)); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func selectCell(t *testing.T, conn *websocket.Conn, player, row, col int) mb.Notice {
	t.Helper()

	req := mc.NewMessage[mc.ReqSelectCell](mc.CodeSelectCell)
	req.AddPayload(mc.ReqSelectCell{Player: player, Row: row, Col: col})

	resp := roundTrip[mc.RespNotice](t, conn, req)
	if resp.Error != nil {
		t.Fatalf("select cell failed: %s", resp.Error.ErrorDetails)
	}
	return resp.Payload.Notice
}

func createGame(t *testing.T, conn *websocket.Conn) mc.Message[mc.RespCreateGame] {
	t.Helper()

	resp := roundTrip[mc.RespCreateGame](t, conn, mc.NewSignal(mc.CodeCreateGame))
	if resp.Code != mc.CodeCreateGame || resp.Error != nil {
		t.Fatalf("failed to create game: %+v", resp)
	}
	return resp
}

// Ships in rows 0, 2, 4, 6 and 8 starting from the first column
func placeFleet(t *testing.T, conn *websocket.Conn, player int) mb.Notice {
	t.Helper()

	var n mb.Notice
	for i, size := range mb.ShipSizes {
		for col := 0; col < size; col++ {
			n = selectCell(t, conn, player, i*2, col)
			if n.Kind == mb.NoticeRejectedInvalidSelection {
				t.Fatalf("ship cell rejected\tplayer: %d\trow: %d\tcol: %d", player, i*2, col)
			}
		}
	}
	return n
}

func TestInvalidCode(t *testing.T) {
	ts := newTestServer(t, sqlc.DbManager{})
	conn := ts.dial(t)

	tests := []struct {
		name         string
		req          interface{}
		expectedCode uint8
	}{
		{name: "random invalid code", req: mc.NewSignal(255), expectedCode: mc.CodeInvalidSignal},
		{name: "code absent", req: map[string]string{"hello": "world"}, expectedCode: mc.CodeSignalAbsent},
		{name: "game op before create", req: mc.NewSignal(mc.CodeBeginBattle), expectedCode: mc.CodeGameNotCreated},
		{name: "state before create", req: mc.NewSignal(mc.CodeGameState), expectedCode: mc.CodeGameNotCreated},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := roundTrip[mc.NoPayload](t, conn, test.req)
			if resp.Code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, resp.Code)
			}
			if resp.Error == nil {
				t.Fatal("expected error in response")
			}
		})
	}
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t, sqlc.DbManager{})
	conn := ts.dial(t)

	resp := createGame(t, conn)
	if resp.Payload.Notice.Kind != mb.NoticePlacementStarted {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticePlacementStarted, resp.Payload.Notice.Kind)
	}
	if resp.Payload.Notice.NextShipSize != mb.ShipSizes[0] {
		t.Fatalf("expected ship size: %d\tgot: %d", mb.ShipSizes[0], resp.Payload.Notice.NextShipSize)
	}

	firstUuid := resp.Payload.GameUuid
	if _, err := ts.gameManager.GetGame(firstUuid); err != nil {
		t.Fatal(err)
	}

	// A second create replaces the first game
	second := createGame(t, conn)
	if _, err := ts.gameManager.GetGame(firstUuid); err == nil {
		t.Fatal("previous game must be terminated")
	}
	if _, err := ts.gameManager.GetGame(second.Payload.GameUuid); err != nil {
		t.Fatal(err)
	}
}

func TestSelectCellInvalidPayload(t *testing.T) {
	ts := newTestServer(t, sqlc.DbManager{})
	conn := ts.dial(t)
	createGame(t, conn)

	tests := []struct {
		name string
		req  interface{}
	}{
		{name: "missing payload", req: mc.NewSignal(mc.CodeSelectCell)},
		{name: "row out of grid", req: mc.Message[mc.ReqSelectCell]{Code: mc.CodeSelectCell, Payload: mc.ReqSelectCell{Player: 0, Row: 12, Col: 0}}},
		{name: "invalid player", req: mc.Message[mc.ReqSelectCell]{Code: mc.CodeSelectCell, Payload: mc.ReqSelectCell{Player: 5, Row: 0, Col: 0}}},
		{name: "wrong types", req: map[string]interface{}{"code": mc.CodeSelectCell, "payload": map[string]string{"row": "a"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := roundTrip[mc.RespNotice](t, conn, test.req)
			if resp.Code != mc.CodeSelectCell {
				t.Fatalf("expected code: %d\tgot: %d", mc.CodeSelectCell, resp.Code)
			}
			if resp.Error == nil {
				t.Fatal("expected error in response")
			}
		})
	}
}

func TestPlacementOverWire(t *testing.T) {
	ts := newTestServer(t, sqlc.DbManager{})
	conn := ts.dial(t)
	createGame(t, conn)

	if n := selectCell(t, conn, 0, 0, 0); n.Kind != mb.NoticeAccepted {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeAccepted, n.Kind)
	}
	if n := selectCell(t, conn, 0, 2, 0); n.Kind != mb.NoticeRejectedInvalidSelection || n.NextShipSize != 5 {
		t.Fatalf("expected rejected selection with ship size 5\tgot: %+v", n)
	}

	state := roundTrip[mc.RespGameState](t, conn, mc.NewSignal(mc.CodeGameState))
	if state.Payload.State.Phase != mb.PhasePlacement.String() {
		t.Fatalf("expected phase: %s\tgot: %s", mb.PhasePlacement, state.Payload.State.Phase)
	}
	for _, c := range state.Payload.State.Boards[0] {
		if c.Placed || c.HasShip {
			t.Fatalf("board must be empty after rejection\trow: %d\tcol: %d", c.Row, c.Col)
		}
	}
}

func TestChatMessage(t *testing.T) {
	ts := newTestServer(t, sqlc.DbManager{})
	conn := ts.dial(t)
	createGame(t, conn)

	tests := []struct {
		name             string
		req              mc.ReqChatMessage
		expectedAppended bool
		expectedText     string
	}{
		{name: "player 2 message", req: mc.ReqChatMessage{Player: 1, Text: " good luck "}, expectedAppended: true, expectedText: "Player 2: good luck"},
		{name: "whitespace only", req: mc.ReqChatMessage{Player: 0, Text: "  "}, expectedAppended: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := mc.NewMessage[mc.ReqChatMessage](mc.CodeChatMessage)
			req.AddPayload(test.req)

			resp := roundTrip[mc.RespChatMessage](t, conn, req)
			if resp.Error != nil {
				t.Fatalf("chat failed: %s", resp.Error.ErrorDetails)
			}
			if resp.Payload.Appended != test.expectedAppended {
				t.Fatalf("expected appended: %t\tgot: %t", test.expectedAppended, resp.Payload.Appended)
			}
			if test.expectedAppended && resp.Payload.Message.Text != test.expectedText {
				t.Fatalf("expected text: %q\tgot: %q", test.expectedText, resp.Payload.Message.Text)
			}
		})
	}

	state := roundTrip[mc.RespGameState](t, conn, mc.NewSignal(mc.CodeGameState))
	if len(state.Payload.State.Chat) != 1 {
		t.Fatalf("expected chat length: %d\tgot: %d", 1, len(state.Payload.State.Chat))
	}
}

func TestFullGame(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ts := newTestServer(t, sqlc.NewDbManager(db))
	serverInet := pqtype.Inet{IPNet: ts.rp.GetIpNet(), Valid: true}

	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(serverInet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_finished\)`).
		WithArgs(serverInet).
		WillReturnResult(sqlmock.NewResult(0, 1))

	conn := ts.dial(t)
	createGame(t, conn)

	if n := placeFleet(t, conn, 0); n.Kind != mb.NoticeShipPlaced || n.PlacingPlayer != 1 {
		t.Fatalf("expected placement to move to player 2\tgot: %+v", n)
	}

	// Battle cannot begin before both fleets are placed
	early := roundTrip[mc.RespNotice](t, conn, mc.NewSignal(mc.CodeBeginBattle))
	if early.Payload.Notice.Kind != mb.NoticeIgnored {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeIgnored, early.Payload.Notice.Kind)
	}

	if n := placeFleet(t, conn, 1); n.Kind != mb.NoticePlacementPhaseComplete {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticePlacementPhaseComplete, n.Kind)
	}

	begin := roundTrip[mc.RespNotice](t, conn, mc.NewSignal(mc.CodeBeginBattle))
	if begin.Payload.Notice.Kind != mb.NoticeBattleStarted {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeBattleStarted, begin.Payload.Notice.Kind)
	}

	// Ships are hidden while the battle runs
	state := roundTrip[mc.RespGameState](t, conn, mc.NewSignal(mc.CodeGameState))
	for _, board := range state.Payload.State.Boards {
		for _, c := range board {
			if c.HasShip {
				t.Fatalf("ship must be masked\trow: %d\tcol: %d", c.Row, c.Col)
			}
		}
	}

	if n := selectCell(t, conn, 0, 10, 0); n.Kind != mb.NoticeRejectedNotYourTurn {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeRejectedNotYourTurn, n.Kind)
	}

	var last mb.Notice
	shipCell := 0
	for i, size := range mb.ShipSizes {
		for col := 0; col < size; col++ {
			// Player 1 misses on the empty rows 10 and 11 of player 2
			if n := selectCell(t, conn, 1, 11-shipCell/mb.BoardSize, shipCell%mb.BoardSize); n.Kind != mb.NoticeMiss {
				t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeMiss, n.Kind)
			}
			last = selectCell(t, conn, 0, i*2, col)
			shipCell++
		}
	}

	if last.Kind != mb.NoticeGameOver || last.Winner != 1 {
		t.Fatalf("expected player 2 to win\tgot: %+v", last)
	}
	if n := selectCell(t, conn, 1, 11, 11); n.Kind != mb.NoticeIgnored {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticeIgnored, n.Kind)
	}

	reset := roundTrip[mc.RespNotice](t, conn, mc.NewSignal(mc.CodeResetGame))
	if reset.Payload.Notice.Kind != mb.NoticePlacementStarted {
		t.Fatalf("expected notice: %s\tgot: %s", mb.NoticePlacementStarted, reset.Payload.Notice.Kind)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
