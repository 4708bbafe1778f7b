package chatService

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	"HealthAssistant/pkg/nlp"
	"context"
	"fmt"
	"strings"
	"time"
)

// capabilityTable is the static intent -> capability listing echoed to
// clients and used for the unknown-intent fallback.
var capabilityTable = []chat.Capability{
	{
		Intent:      string(nlp.IntentSymptomAnalysis),
		Description: "Describe your symptoms and get a preliminary triage assessment",
		Example:     "I have a fever and cough for 3 days",
	},
	{
		Intent:      string(nlp.IntentInsuranceVerification),
		Description: "Verify your insurance policy coverage",
		Example:     "Can you check my Aetna policy AET123456?",
	},
	{
		Intent:      string(nlp.IntentAppointmentBooking),
		Description: "Find doctors and book an appointment",
		Example:     "I need to book an appointment with a cardiologist",
	},
	{
		Intent:      string(nlp.IntentHospitalNavigation),
		Description: "Get guided through your hospital visit step by step",
		Example:     "I just arrived at the hospital for my appointment",
	},
	{
		Intent:      string(nlp.IntentGeneralHealthQuestion),
		Description: "Ask a general health question",
		Example:     "How much water should I drink per day?",
	},
	{
		Intent:      string(nlp.IntentEmergency),
		Description: "Emergency situations are detected automatically and escalated",
		Example:     "Severe chest pain, can't breathe",
	},
}

// route maps the resolved classification to a handler. The switch over
// the intent set is exhaustive so a new intent cannot be added without
// deciding its dispatch here.
func (s *chatService) route(ctx context.Context, session *entity.ChatSession, text string, cls nlp.ClassificationResult) (chat.HandlerResult, []string) {
	followUps := cls.FollowUpQuestions

	// Emergency bypasses journeys, pending confirmations, everything.
	if cls.Intent == nlp.IntentEmergency {
		session.Pending = nil
		return s.handleEmergency(cls), followUps
	}

	if session.Pending != nil {
		return s.resolvePendingConfirmation(ctx, session, text, cls)
	}

	if session.Journey != nil {
		if journeyCompatible(cls) {
			return s.advanceJourney(ctx, session, text, cls)
		}

		// Confident switch to a different domain: confirm before the
		// active journey is abandoned.
		session.Pending = &entity.PendingConfirmation{
			Intent:    cls.Intent,
			Message:   text,
			Entities:  cls.Entities,
			CreatedAt: time.Now(),
		}
		return chat.HandlerResult{
				Status: chat.StatusNeedsConfirmation,
				Message: fmt.Sprintf(
					"You're in the middle of a hospital visit (%s stage). Do you want to pause it and switch to %s instead?",
					session.Journey.Stage, intentLabel(cls.Intent)),
			}, []string{
				`Reply "yes" to switch, or "no" to continue your visit.`,
			}
	}

	// Below the acceptance threshold nothing routes automatically.
	if cls.Confidence < nlp.AcceptThreshold && cls.Intent != nlp.IntentUnknown {
		if len(followUps) == 0 {
			followUps = []string{"Could you tell me a bit more about what you need help with?"}
		}
		return chat.HandlerResult{
			Status: chat.StatusNeedsInfo,
			Message: fmt.Sprintf(
				"It sounds like you might need help with %s, but I'm not sure I understood correctly.",
				intentLabel(cls.Intent)),
		}, followUps
	}

	switch cls.Intent {
	case nlp.IntentSymptomAnalysis:
		return s.handleSymptoms(ctx, text, cls), followUps
	case nlp.IntentInsuranceVerification:
		return s.handleInsurance(ctx, cls)
	case nlp.IntentAppointmentBooking:
		return s.handleBooking(ctx, cls)
	case nlp.IntentHospitalNavigation:
		s.startJourney(session)
		return s.advanceJourney(ctx, session, text, cls)
	case nlp.IntentGeneralHealthQuestion:
		return s.handleGeneralQuestion(ctx, text), followUps
	case nlp.IntentEmergency:
		// Already handled above; kept so the switch stays exhaustive.
		return s.handleEmergency(cls), followUps
	case nlp.IntentUnknown:
		return s.handleUnknown(), followUps
	default:
		return s.handleUnknown(), followUps
	}
}

// journeyCompatible reports whether a classification continues the
// active journey rather than switching away from it. Insurance turns
// stay inside the journey because the check-in stage consumes them.
func journeyCompatible(cls nlp.ClassificationResult) bool {
	if cls.Confidence < nlp.AcceptThreshold {
		return true
	}
	switch cls.Intent {
	case nlp.IntentHospitalNavigation, nlp.IntentUnknown, nlp.IntentInsuranceVerification:
		return true
	default:
		return false
	}
}

var confirmWords = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "sure": true,
	"ok": true, "okay": true, "confirm": true, "switch": true,
}

var declineWords = map[string]bool{
	"no": true, "nope": true, "cancel": true, "stay": true,
	"continue": true, "keep": true,
}

func (s *chatService) resolvePendingConfirmation(ctx context.Context, session *entity.ChatSession, text string, cls nlp.ClassificationResult) (chat.HandlerResult, []string) {
	pending := session.Pending
	answer := strings.ToLower(strings.TrimSpace(text))

	confirmed := confirmWords[answer]
	declined := declineWords[answer]
	if !confirmed && !declined {
		for _, token := range strings.Fields(answer) {
			if confirmWords[token] {
				confirmed = true
				break
			}
			if declineWords[token] {
				declined = true
				break
			}
		}
	}

	switch {
	case confirmed:
		session.Pending = nil
		s.archiveJourney(session, "abandoned")
		switched := nlp.ClassificationResult{
			Intent:     pending.Intent,
			Confidence: 1.0,
			Reasoning:  "user confirmed switching away from the active journey",
			Entities:   pending.Entities,
			Source:     "confirmation",
		}
		return s.route(ctx, session, pending.Message, switched)
	case declined:
		session.Pending = nil
		if session.Journey != nil {
			return s.stagePrompt(session.Journey), s.stageFollowUps(session.Journey)
		}
		return chat.HandlerResult{
			Status:  chat.StatusSuccess,
			Message: "Okay, let's continue where we left off.",
		}, nil
	default:
		return chat.HandlerResult{
				Status: chat.StatusNeedsConfirmation,
				Message: fmt.Sprintf(
					"Just to confirm: do you want to pause your hospital visit and switch to %s?",
					intentLabel(pending.Intent)),
			}, []string{
				`Please answer "yes" or "no".`,
			}
	}
}

func intentLabel(intent nlp.Intent) string {
	return strings.ReplaceAll(string(intent), "_", " ")
}
