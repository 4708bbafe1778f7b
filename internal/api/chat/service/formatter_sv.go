package chatService

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	"HealthAssistant/pkg/nlp"
	"time"
)

// formatResponse wraps a handler result and the turn's classification
// into the single response envelope. It never rewrites the handler
// payload.
func (s *chatService) formatResponse(
	sessionID string,
	userInput string,
	cls nlp.ClassificationResult,
	result chat.HandlerResult,
	followUps []string,
	journey *entity.Journey,
) *chat.ChatResponse {
	if followUps == nil {
		followUps = []string{}
	}

	return &chat.ChatResponse{
		SessionID:         sessionID,
		Timestamp:         time.Now(),
		UserInput:         userInput,
		Intent:            string(cls.Intent),
		Confidence:        cls.Confidence,
		Reasoning:         cls.Reasoning,
		RequiresMoreInfo:  cls.RequiresMoreInfo || result.Status == chat.StatusNeedsInfo || result.Status == chat.StatusNeedsConfirmation,
		FollowUpQuestions: followUps,
		Result:            result,
		Journey:           journeyState(journey),
	}
}

// apologyEnvelope is the well-formed response for a turn whose
// classification failed on every path. The turn is not recorded.
func (s *chatService) apologyEnvelope(sessionID, userInput string) *chat.ChatResponse {
	return &chat.ChatResponse{
		SessionID:         sessionID,
		Timestamp:         time.Now(),
		UserInput:         userInput,
		Intent:            string(nlp.IntentUnknown),
		Confidence:        0,
		RequiresMoreInfo:  true,
		FollowUpQuestions: []string{"Could you rephrase that?"},
		Result: chat.HandlerResult{
			Status:  chat.StatusFailed,
			Message: "I'm sorry, I'm having trouble understanding right now. Please try again in a moment.",
		},
	}
}
