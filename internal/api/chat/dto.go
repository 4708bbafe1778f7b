package chat

import (
	"time"
)

type ChatRequest struct {
	Message   string                 `json:"message" validate:"required,min=1,max=2000"`
	SessionID string                 `json:"session_id,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// HandlerResult is the intent-specific payload produced by whichever
// handler served the turn. The formatter wraps it without touching its
// content.
type HandlerResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

const (
	StatusSuccess           = "success"
	StatusFailed            = "failed"
	StatusNeedsInfo         = "needs_info"
	StatusNeedsConfirmation = "needs_confirmation"
	StatusEmergency         = "emergency"
	StatusEscalated         = "escalated"
)

type ChatResponse struct {
	SessionID         string        `json:"session_id"`
	Timestamp         time.Time     `json:"timestamp"`
	UserInput         string        `json:"user_input"`
	Intent            string        `json:"intent"`
	Confidence        float64       `json:"confidence"`
	Reasoning         string        `json:"reasoning,omitempty"`
	RequiresMoreInfo  bool          `json:"requires_more_info"`
	FollowUpQuestions []string      `json:"follow_up_questions"`
	Result            HandlerResult `json:"result"`
	Journey           *JourneyState `json:"journey,omitempty"`
}

type JourneyState struct {
	Stage     string                 `json:"stage"`
	Retries   int                    `json:"retries"`
	StageData map[string]interface{} `json:"stage_data,omitempty"`
}

type TurnRecord struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type ConversationResponse struct {
	SessionID string        `json:"session_id"`
	Turns     []TurnRecord  `json:"turns"`
	Journey   *JourneyState `json:"journey,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Capability struct {
	Intent      string `json:"intent"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

type CapabilitiesResponse struct {
	Capabilities []Capability `json:"capabilities"`
}
