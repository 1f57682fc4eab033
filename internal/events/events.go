// Package events publishes quiz lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypeQuizCreated   = "quiz.created"
	TypeQuizSubmitted = "quiz.submitted"
)

type Event struct {
	Type      string `json:"type"`
	Key       string `json:"key"` // natural key, e.g. the quiz id
	Data      any    `json:"data"`
	CreatedAt int64  `json:"createdAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func stamp(e Event) Event {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	return e
}

func encode(e Event) ([]byte, error) { return json.Marshal(e) }
