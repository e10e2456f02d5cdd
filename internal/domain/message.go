package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created and owned exclusively by its room.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    User      `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps the message with a fresh id and the current time.
// The id embeds the author id ("<uuid>-<authorId>"), the format clients
// already parse.
func NewMessage(author User, text string) *Message {
	return &Message{
		ID:        fmt.Sprintf("%s-%s", uuid.NewString(), author.ID),
		Text:      text,
		Author:    author,
		Timestamp: time.Now(),
	}
}
