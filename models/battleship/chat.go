package battleship

import (
	"strings"
	"time"
)

type ChatMessage struct {
	Player int       `json:"player"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Trims the text and appends it to the chat log prefixed with
// the player label. Empty text is dropped and false is returned.
// This never touches the game state.
func (g *GameSession) SendChatMessage(player int, text string) (ChatMessage, bool) {
	if !isValidPlayer(player) {
		return ChatMessage{}, false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, false
	}

	msg := ChatMessage{
		Player: player,
		Text:   PlayerLabel(player) + ": " + text,
		SentAt: time.Now(),
	}
	g.chat = append(g.chat, msg)
	return msg, true
}

func (g *GameSession) ChatLog() []ChatMessage {
	chatLog := make([]ChatMessage, len(g.chat))
	copy(chatLog, g.chat)
	return chatLog
}
