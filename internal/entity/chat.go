package entity

import (
	"HealthAssistant/pkg/nlp"
	"time"
)

// Turn is a single exchange stored in a session's conversation history.
type Turn struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Intent     nlp.Intent `json:"intent,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

type ChatSession struct {
	ID        string                 `json:"id"`
	History   []Turn                 `json:"history"`
	Journey   *Journey               `json:"journey,omitempty"`
	Pending   *PendingConfirmation   `json:"pending,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// PendingConfirmation tracks a confident cross-domain intent switch that
// is waiting for an explicit yes/no from the user before the active
// journey is abandoned.
type PendingConfirmation struct {
	Intent    nlp.Intent             `json:"intent"`
	Message   string                 `json:"message"`
	Entities  map[string]interface{} `json:"entities,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
