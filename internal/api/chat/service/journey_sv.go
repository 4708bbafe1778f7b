package chatService

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/api/insurance"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/nlp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *chatService) startJourney(session *entity.ChatSession) {
	if session.Journey != nil {
		return
	}

	now := time.Now()
	session.Journey = &entity.Journey{
		Stage:     entity.StageArrival,
		StageData: map[string]interface{}{},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// archiveJourney moves the active journey into session metadata so the
// record survives without the journey staying active.
func (s *chatService) archiveJourney(session *entity.ChatSession, outcome string) {
	if session.Journey == nil {
		return
	}

	now := time.Now()
	session.Journey.CompletedAt = &now

	if session.Metadata == nil {
		session.Metadata = map[string]interface{}{}
	}
	archived, _ := session.Metadata["archived_journeys"].([]interface{})
	session.Metadata["archived_journeys"] = append(archived, map[string]interface{}{
		"stage":      string(session.Journey.Stage),
		"outcome":    outcome,
		"stage_data": session.Journey.StageData,
		"started_at": session.Journey.StartedAt,
		"ended_at":   now,
	})

	session.Journey = nil
}

// advanceJourney runs one turn of the hospital-visit state machine.
// Entities always merge into journey data, but the stage only moves
// when the turn is confident and the stage's exit condition holds.
func (s *chatService) advanceJourney(ctx context.Context, session *entity.ChatSession, text string, cls nlp.ClassificationResult) (chat.HandlerResult, []string) {
	requestID := contextPkg.GetRequestID(ctx)

	if session.Journey == nil {
		s.startJourney(session)
	}
	journey := session.Journey
	mergeJourneyEntities(journey, cls.Entities)
	journey.UpdatedAt = time.Now()

	if cls.Confidence < nlp.AcceptThreshold {
		prompt := s.stagePrompt(journey)
		prompt.Status = chat.StatusNeedsInfo
		prompt.Message = "I didn't quite catch that. " + prompt.Message
		return prompt, s.stageFollowUps(journey)
	}

	// Insurance details re-supplied after check-in trigger a fresh
	// verification; a failure is the one case that moves the stage
	// backward.
	if cls.Intent == nlp.IntentInsuranceVerification &&
		entity.StageIndex(journey.Stage) > entity.StageIndex(entity.StageCheckIn) {
		return s.reverifyInsurance(ctx, journey)
	}

	var result chat.HandlerResult
	var followUps []string

	switch journey.Stage {
	case entity.StageArrival:
		result, followUps = s.journeyArrival(journey)
	case entity.StageCheckIn:
		result, followUps = s.journeyCheckIn(ctx, journey)
	case entity.StageNavigation:
		result, followUps = s.journeyNavigation(journey, text)
	case entity.StageVisit:
		result, followUps = s.journeyVisit(session, journey, text)
	case entity.StageDeparture:
		// Departure completes in the turn that enters it; reaching
		// here means an archive was missed, so finish it now.
		result, followUps = s.journeyDeparture(session)
	default:
		result = chat.HandlerResult{
			Status:  chat.StatusFailed,
			Message: "Something went wrong with your visit tracking. Let's start over.",
		}
		s.archiveJourney(session, "invalid_stage")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"status":     result.Status,
	}).Debug("Journey turn processed")

	return result, followUps
}

func (s *chatService) journeyArrival(journey *entity.Journey) (chat.HandlerResult, []string) {
	missing := missingKeys(journey.StageData,
		[]string{"patient_name"},
		[]string{"doctor_name", "doctor", "department"},
	)
	if len(missing) > 0 {
		return chat.HandlerResult{
			Status:  chat.StatusNeedsInfo,
			Message: "Welcome to the hospital! I'll guide you through your visit. First I need a couple of details.",
			Data:    map[string]interface{}{"stage": string(entity.StageArrival)},
		}, arrivalFollowUps(missing)
	}

	journey.Stage = entity.NextStage(journey.Stage)
	journey.Retries = 0

	return chat.HandlerResult{
		Status: chat.StatusSuccess,
		Message: fmt.Sprintf(
			"Welcome, %s! You're all set to see %s. Next step is check-in: please share your insurance provider, policy number, and the name on the policy.",
			journeyString(journey, "patient_name"), doctorLabel(journey)),
		Data: map[string]interface{}{"stage": string(journey.Stage)},
	}, []string{
		"What is your insurance provider?",
		"What is your policy number?",
	}
}

func (s *chatService) journeyCheckIn(ctx context.Context, journey *entity.Journey) (chat.HandlerResult, []string) {
	provider := journeyString(journey, "provider", "provider_name", "insurance_provider")
	policyNumber := journeyString(journey, "policy_number")
	holderName := journeyString(journey, "policy_holder_name", "member_name", "patient_name")

	var missing []string
	if provider == "" {
		missing = append(missing, "What is your insurance provider?")
	}
	if policyNumber == "" {
		missing = append(missing, "What is your policy number?")
	}
	if holderName == "" {
		missing = append(missing, "What name is the policy under?")
	}
	if len(missing) > 0 {
		return chat.HandlerResult{
			Status:  chat.StatusNeedsInfo,
			Message: "To check you in, I still need some insurance details.",
			Data:    map[string]interface{}{"stage": string(entity.StageCheckIn)},
		}, missing
	}

	verification, err := s.insurance.Verify(ctx, insurance.VerifyRequest{
		Provider:         provider,
		PolicyNumber:     policyNumber,
		PolicyHolderName: holderName,
		PolicyHolderDOB:  journeyString(journey, "policy_holder_dob", "dob", "date_of_birth"),
	})
	if err != nil || !verification.Verified {
		return s.checkInFailure(journey, verification, err)
	}

	journey.StageData["insurance_verified"] = true
	journey.StageData["insurance_details"] = verification.Details
	journey.StageData["queue_number"] = int(time.Now().Unix()%40) + 1
	journey.Stage = entity.NextStage(journey.Stage)
	journey.Retries = 0

	return chat.HandlerResult{
		Status: chat.StatusSuccess,
		Message: fmt.Sprintf(
			"You're checked in! Your insurance with %s is verified and your queue number is %v. Which department or doctor's office are you heading to?",
			verification.Provider, journey.StageData["queue_number"]),
		Data: map[string]interface{}{
			"stage":        string(journey.Stage),
			"queue_number": journey.StageData["queue_number"],
		},
	}, []string{
		"Which department are you looking for?",
	}
}

// checkInFailure keeps the stage, counts the retry, and escalates to a
// human channel once the retry budget is exhausted.
func (s *chatService) checkInFailure(journey *entity.Journey, verification *insurance.VerificationResult, err error) (chat.HandlerResult, []string) {
	journey.Retries++

	// Stale values must not short-circuit the next verification attempt.
	delete(journey.StageData, "policy_number")

	if journey.Retries >= s.journeyMaxRetries {
		return chat.HandlerResult{
			Status: chat.StatusEscalated,
			Message: "I wasn't able to verify your insurance after several attempts. " +
				"Please visit the registration desk and a staff member will help you check in.",
			Data: map[string]interface{}{"stage": string(entity.StageCheckIn)},
		}, []string{
			"Is there anything else I can help you with in the meantime?",
		}
	}

	reason := "I couldn't verify your insurance."
	if err == nil && verification != nil && len(verification.Errors) > 0 {
		reason = verification.Errors[0]
	}

	return chat.HandlerResult{
		Status:  chat.StatusFailed,
		Message: reason + " Let's try again.",
		Data:    map[string]interface{}{"stage": string(entity.StageCheckIn)},
	}, []string{
		"Please double-check your policy number. What is it?",
		"And the exact name on the policy?",
	}
}

func (s *chatService) reverifyInsurance(ctx context.Context, journey *entity.Journey) (chat.HandlerResult, []string) {
	verification, err := s.insurance.Verify(ctx, insurance.VerifyRequest{
		Provider:         journeyString(journey, "provider", "provider_name", "insurance_provider"),
		PolicyNumber:     journeyString(journey, "policy_number"),
		PolicyHolderName: journeyString(journey, "policy_holder_name", "member_name", "patient_name"),
		PolicyHolderDOB:  journeyString(journey, "policy_holder_dob", "dob", "date_of_birth"),
	})
	if err != nil || !verification.Verified {
		journey.Stage = entity.StageCheckIn
		journey.Retries = 0
		result, followUps := s.checkInFailure(journey, verification, err)
		result.Message = "There's a problem with your insurance, so we need to redo check-in. " + result.Message
		return result, followUps
	}

	journey.StageData["insurance_verified"] = true
	journey.StageData["insurance_details"] = verification.Details

	return chat.HandlerResult{
		Status:  chat.StatusSuccess,
		Message: fmt.Sprintf("Your insurance with %s checks out, no changes needed. Let's continue your visit.", verification.Provider),
		Data:    map[string]interface{}{"stage": string(journey.Stage)},
	}, s.stageFollowUps(journey)
}

func (s *chatService) journeyNavigation(journey *entity.Journey, text string) (chat.HandlerResult, []string) {
	destination := journeyString(journey, "destination", "department", "location_query")
	if destination == "" {
		return chat.HandlerResult{
			Status:  chat.StatusNeedsInfo,
			Message: "Which department or room are you trying to reach?",
			Data:    map[string]interface{}{"stage": string(entity.StageNavigation)},
		}, []string{"Which department are you looking for?"}
	}
	journey.StageData["destination"] = destination

	if hasArrivalSignal(text) {
		journey.Stage = entity.NextStage(journey.Stage)
		journey.Retries = 0
		return chat.HandlerResult{
			Status: chat.StatusSuccess,
			Message: fmt.Sprintf(
				"Great, you've reached %s. Take a seat and watch for queue number %v. Let me know when your visit is over, or ask me anything while you wait.",
				destination, journey.StageData["queue_number"]),
			Data: map[string]interface{}{"stage": string(journey.Stage)},
		}, nil
	}

	return chat.HandlerResult{
		Status: chat.StatusSuccess,
		Message: fmt.Sprintf(
			"Head toward %s and follow the overhead signs. Your queue number is %v. Tell me when you've arrived.",
			destination, journey.StageData["queue_number"]),
		Data: map[string]interface{}{
			"stage":       string(entity.StageNavigation),
			"destination": destination,
		},
	}, []string{"Let me know once you've arrived at the department."}
}

func (s *chatService) journeyVisit(session *entity.ChatSession, journey *entity.Journey, text string) (chat.HandlerResult, []string) {
	if hasCompletionSignal(text) {
		journey.Stage = entity.NextStage(journey.Stage)
		return s.journeyDeparture(session)
	}

	return chat.HandlerResult{
		Status: chat.StatusSuccess,
		Message: fmt.Sprintf(
			"You're with %s now. I'm here if you need anything during the visit. Say the word when you're done.",
			doctorLabel(journey)),
		Data: map[string]interface{}{"stage": string(entity.StageVisit)},
	}, []string{"Tell me when your visit is over."}
}

func (s *chatService) journeyDeparture(session *entity.ChatSession) (chat.HandlerResult, []string) {
	patientName := journeyString(session.Journey, "patient_name")
	s.archiveJourney(session, "completed")

	message := "Your visit is complete. Don't forget any follow-up instructions from your doctor, and take care on your way home!"
	if patientName != "" {
		message = fmt.Sprintf("Thanks for visiting, %s! %s", patientName, message)
	}

	return chat.HandlerResult{
		Status:  chat.StatusSuccess,
		Message: message,
		Data:    map[string]interface{}{"stage": string(entity.StageDeparture)},
	}, nil
}

// stagePrompt restates where the journey stands, used for clarification
// turns that must not advance the stage.
func (s *chatService) stagePrompt(journey *entity.Journey) chat.HandlerResult {
	var message string
	switch journey.Stage {
	case entity.StageArrival:
		message = "We're getting you settled in. Could you share your name and which doctor you're here to see?"
	case entity.StageCheckIn:
		message = "We're in the middle of check-in. Could you share your insurance details?"
	case entity.StageNavigation:
		message = "I'm helping you find your way. Which department are you heading to, or have you arrived?"
	case entity.StageVisit:
		message = "You're at your visit. Let me know when you're done or if you need anything."
	default:
		message = "Let's continue your hospital visit. What do you need?"
	}

	return chat.HandlerResult{
		Status:  chat.StatusNeedsInfo,
		Message: message,
		Data:    map[string]interface{}{"stage": string(journey.Stage)},
	}
}

func (s *chatService) stageFollowUps(journey *entity.Journey) []string {
	switch journey.Stage {
	case entity.StageArrival:
		return []string{"What is your name?", "Which doctor are you here to see?"}
	case entity.StageCheckIn:
		return []string{"What is your insurance provider?", "What is your policy number?"}
	case entity.StageNavigation:
		return []string{"Which department are you looking for?"}
	case entity.StageVisit:
		return []string{"Tell me when your visit is over."}
	default:
		return []string{"How can I help with your visit?"}
	}
}

func mergeJourneyEntities(journey *entity.Journey, entities map[string]interface{}) {
	if journey.StageData == nil {
		journey.StageData = map[string]interface{}{}
	}
	for key, value := range entities {
		if value == nil {
			continue
		}
		if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
			continue
		}
		journey.StageData[key] = value
	}
}

func journeyString(journey *entity.Journey, keys ...string) string {
	if journey == nil || journey.StageData == nil {
		return ""
	}
	for _, key := range keys {
		if value, ok := journey.StageData[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func doctorLabel(journey *entity.Journey) string {
	if doctor := journeyString(journey, "doctor_name", "doctor"); doctor != "" {
		return doctor
	}
	if department := journeyString(journey, "department"); department != "" {
		return "the " + department + " department"
	}
	return "your doctor"
}

// missingKeys returns one entry per alternative-key group that has no
// value in the data map.
func missingKeys(data map[string]interface{}, groups ...[]string) [][]string {
	var missing [][]string
	for _, group := range groups {
		found := false
		for _, key := range group {
			if value, ok := data[key].(string); ok && strings.TrimSpace(value) != "" {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, group)
		}
	}
	return missing
}

func arrivalFollowUps(missing [][]string) []string {
	var followUps []string
	for _, group := range missing {
		switch group[0] {
		case "patient_name":
			followUps = append(followUps, "What is your name?")
		default:
			followUps = append(followUps, "Which doctor or department are you here to visit?")
		}
	}
	return followUps
}

func hasArrivalSignal(text string) bool {
	lowered := strings.ToLower(text)
	signals := []string{
		"arrived", "i'm here", "i am here", "just got here",
		"found it", "i'm at", "i am at", "made it",
	}
	for _, signal := range signals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}

func hasCompletionSignal(text string) bool {
	lowered := strings.ToLower(text)
	for _, signal := range []string{"done", "finished", "visit is over", "all set", "completed", "heading home", "leaving"} {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}

func journeyState(journey *entity.Journey) *chat.JourneyState {
	if journey == nil {
		return nil
	}
	return &chat.JourneyState{
		Stage:     string(journey.Stage),
		Retries:   journey.Retries,
		StageData: journey.StageData,
	}
}
