package chatService

import (
	"context"
	"errors"
	"strings"
	"testing"

	"HealthAssistant/internal/api/appointment"
	"HealthAssistant/internal/api/chat"
	chatRepository "HealthAssistant/internal/api/chat/repository"
	"HealthAssistant/internal/api/insurance"
	"HealthAssistant/pkg/gemini"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/nlp"
	"HealthAssistant/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGemini serves scripted classification results in order. A nil
// entry simulates an LLM failure so the rule path carries the turn.
type stubGemini struct {
	script []*nlp.ClassificationResult
	calls  int
}

func (g *stubGemini) ClassifyIntent(ctx context.Context, text string, history []gemini.HistoryMessage) (*nlp.ClassificationResult, error) {
	if g.calls >= len(g.script) {
		return nil, errors.New("no scripted response left")
	}
	result := g.script[g.calls]
	g.calls++
	if result == nil {
		return nil, errors.New("scripted llm failure")
	}
	return result, nil
}

func (g *stubGemini) AnswerHealthQuestion(ctx context.Context, question string) (string, error) {
	return "", errors.New("not scripted")
}

func (g *stubGemini) DetectInsuranceProvider(ctx context.Context, providerName string, candidates []string) (string, error) {
	return "", errors.New("not scripted")
}

type stubInsurance struct {
	verifyFn func(req insurance.VerifyRequest) (*insurance.VerificationResult, error)
}

func (i *stubInsurance) Verify(ctx context.Context, req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
	if i.verifyFn != nil {
		return i.verifyFn(req)
	}
	return &insurance.VerificationResult{
		PolicyFound: true,
		Verified:    true,
		Provider:    req.Provider,
		Details:     map[string]interface{}{"policy_number": req.PolicyNumber},
	}, nil
}

func (i *stubInsurance) ListProviders(ctx context.Context) insurance.ProvidersResponse {
	return insurance.ProvidersResponse{}
}

type stubAppointments struct {
	slots   []appointment.SlotResponse
	bookErr error
}

func (a *stubAppointments) GetDoctors(ctx context.Context, specialty string) ([]appointment.DoctorResponse, error) {
	return nil, nil
}

func (a *stubAppointments) GetAvailableSlots(ctx context.Context, doctorID string) ([]appointment.SlotResponse, error) {
	return a.slots, nil
}

func (a *stubAppointments) GetBooking(ctx context.Context, bookingCode string) (*appointment.AppointmentResponse, error) {
	return nil, appointment.ErrBookingNotFound
}

func (a *stubAppointments) Book(ctx context.Context, req appointment.BookingRequest) (*appointment.BookingResponse, error) {
	if a.bookErr != nil {
		return nil, a.bookErr
	}
	return &appointment.BookingResponse{
		BookingID: "ABCD1234",
		Status:    "confirmed",
		Message:   "booked",
	}, nil
}

type testEnv struct {
	service   IChatService
	store     chatRepository.ISessionStore
	gemini    *stubGemini
	insurance *stubInsurance
}

func newTestEnv(script ...*nlp.ClassificationResult) *testEnv {
	logger := log.NewLogger()
	store := chatRepository.NewMemoryStore(logger)

	var geminiClient gemini.IGemini
	stub := &stubGemini{script: script}
	if len(script) > 0 {
		geminiClient = stub
	}

	ins := &stubInsurance{}
	svc := New(logger, store, geminiClient, ins, &stubAppointments{}, utils.New())

	return &testEnv{service: svc, store: store, gemini: stub, insurance: ins}
}

func classified(intent nlp.Intent, confidence float64, entities map[string]interface{}) *nlp.ClassificationResult {
	if entities == nil {
		entities = map[string]interface{}{}
	}
	return &nlp.ClassificationResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
		Source:     "llm",
	}
}

func TestProcessMessage_NewSessionAssigned(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I have a fever and cough for 3 days",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.SessionID, "session_"))
	assert.Equal(t, string(nlp.IntentSymptomAnalysis), resp.Intent)
	assert.NotNil(t, resp.FollowUpQuestions)

	session, err := env.store.Get(ctx, resp.SessionID)
	require.NoError(t, err)
	require.Len(t, session.History, 2)
	assert.Equal(t, "user", session.History[0].Role)
	assert.Equal(t, nlp.IntentSymptomAnalysis, session.History[0].Intent)
	assert.Equal(t, "assistant", session.History[1].Role)
}

func TestProcessMessage_BlankMessageRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message: "   ",
	})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

func TestProcessMessage_UnknownSessionRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message:   "hello",
		SessionID: "session_doesnotexist",
	})
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestProcessMessage_EmergencyBypass(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message: "Severe chest pain, can't breathe",
	})
	require.NoError(t, err)

	assert.Equal(t, string(nlp.IntentEmergency), resp.Intent)
	assert.GreaterOrEqual(t, resp.Confidence, nlp.EmergencyConfidenceFloor)
	assert.Equal(t, chat.StatusEmergency, resp.Result.Status)
	assert.Contains(t, resp.Result.Message, "911")
}

func TestProcessMessage_LowConfidenceAsksForClarification(t *testing.T) {
	env := newTestEnv()

	// The rule fallback scores generic text at 0.5, below the routing
	// threshold.
	resp, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message: "what foods are good for the heart",
	})
	require.NoError(t, err)

	assert.Equal(t, chat.StatusNeedsInfo, resp.Result.Status)
	assert.True(t, resp.RequiresMoreInfo)
	assert.NotEmpty(t, resp.FollowUpQuestions)
}

func TestProcessMessage_ExtractionFailureReturnsApology(t *testing.T) {
	// A confident LLM verdict with no intent leaves the arbiter with
	// nothing usable.
	env := newTestEnv(classified("", 0.9, nil))

	resp, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message: "hello there",
	})
	require.NoError(t, err)

	assert.Equal(t, chat.StatusFailed, resp.Result.Status)
	assert.Equal(t, string(nlp.IntentUnknown), resp.Intent)
	assert.True(t, resp.RequiresMoreInfo)
	assert.NotEmpty(t, resp.FollowUpQuestions)

	// The failed turn must not be recorded.
	session, err := env.store.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Empty(t, session.History)
}

func TestJourney_HappyPath(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"patient_name": "John Doe",
			"doctor_name":  "Dr. Smith",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider":           "aetna",
			"policy_number":      "AET123456789",
			"policy_holder_name": "Thomas White",
		}),
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"destination": "cardiology",
		}),
		classified(nlp.IntentHospitalNavigation, 0.9, nil),
		classified(nlp.IntentHospitalNavigation, 0.9, nil),
	)
	ctx := context.Background()

	// Arrival: both required details are present, so the journey moves
	// straight to check-in.
	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "Hi, I'm John Doe, I just arrived for my appointment with Dr. Smith",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "check_in", resp.Journey.Stage)
	sessionID := resp.SessionID

	// Check-in: insurance verifies, queue number assigned.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "My insurance is Aetna, policy AET123456789, under Thomas White",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "navigation", resp.Journey.Stage)
	assert.Equal(t, chat.StatusSuccess, resp.Result.Status)
	assert.NotNil(t, resp.Journey.StageData["queue_number"])

	// Navigation with a destination but no arrival yet keeps the stage.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "How do I get to cardiology?",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "navigation", resp.Journey.Stage)

	// Arrival at the department moves to the visit stage.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "I have arrived",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "visit", resp.Journey.Stage)

	// Completing the visit finishes and archives the journey.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "My visit is over, thank you",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Journey)
	assert.Equal(t, chat.StatusSuccess, resp.Result.Status)

	session, err := env.store.Get(ctx, sessionID)
	require.NoError(t, err)
	archived, ok := session.Metadata["archived_journeys"].([]interface{})
	require.True(t, ok)
	assert.Len(t, archived, 1)
}

func TestJourney_LowConfidenceNeverAdvances(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, nil),
		nil, // llm fails; rules score the gibberish below threshold
	)
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I just arrived at the hospital",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "arrival", resp.Journey.Stage)
	sessionID := resp.SessionID

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "um so like the thing",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "arrival", resp.Journey.Stage)
	assert.Equal(t, chat.StatusNeedsInfo, resp.Result.Status)
	assert.NotEmpty(t, resp.FollowUpQuestions)
}

func TestJourney_CheckInFailureKeepsStageThenEscalates(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"patient_name": "Jane Doe",
			"doctor_name":  "Dr. Patel",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider":      "aetna",
			"policy_number": "WRONG111",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"policy_number": "WRONG222",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"policy_number": "WRONG333",
		}),
	)
	env.insurance.verifyFn = func(req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
		return &insurance.VerificationResult{
			PolicyFound: false,
			Verified:    false,
			Provider:    req.Provider,
			Errors:      []string{"Policy number not found in provider records."},
		}, nil
	}
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I've arrived, I'm Jane Doe here for Dr. Patel",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "check_in", resp.Journey.Stage)
	sessionID := resp.SessionID

	// First two failures keep the stage and ask again.
	for retries, turn := range []string{"Policy WRONG111 under Jane Doe", "try WRONG222 under Jane Doe"} {
		resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
			Message:   turn,
			SessionID: sessionID,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Journey)
		assert.Equal(t, "check_in", resp.Journey.Stage)
		assert.Equal(t, chat.StatusFailed, resp.Result.Status)
		assert.NotEmpty(t, resp.FollowUpQuestions)
		assert.Equal(t, retries+1, resp.Journey.Retries)
	}

	// Third failure exhausts the retry budget.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "ok then WRONG333 under Jane Doe",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, chat.StatusEscalated, resp.Result.Status)
	assert.Contains(t, resp.Result.Message, "registration desk")
}

func TestJourney_CheckInAcceptsModelFieldNames(t *testing.T) {
	// The classifier prompt asks the model for provider_name and dob;
	// check-in must consume those names as-is.
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"patient_name": "Thomas White",
			"doctor_name":  "Dr. Smith",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider_name":      "aetna",
			"policy_number":      "AET123456789",
			"policy_holder_name": "Thomas White",
			"dob":                "1983-04-12",
		}),
	)
	var captured insurance.VerifyRequest
	env.insurance.verifyFn = func(req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
		captured = req
		return &insurance.VerificationResult{
			PolicyFound: true,
			Verified:    true,
			Provider:    req.Provider,
		}, nil
	}
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "Hi, I'm Thomas White, here to see Dr. Smith",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	require.Equal(t, "check_in", resp.Journey.Stage)

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "My insurance is Aetna, policy AET123456789, born 1983-04-12",
		SessionID: resp.SessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "navigation", resp.Journey.Stage)
	assert.Equal(t, chat.StatusSuccess, resp.Result.Status)
	assert.Equal(t, "aetna", captured.Provider)
	assert.Equal(t, "1983-04-12", captured.PolicyHolderDOB)
}

func TestProcessMessage_InsuranceModelFieldNames(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider_name":      "aetna",
			"policy_number":      "AET123456789",
			"policy_holder_name": "Thomas White",
			"dob":                "1983-04-12",
		}),
	)
	var captured insurance.VerifyRequest
	env.insurance.verifyFn = func(req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
		captured = req
		return &insurance.VerificationResult{
			PolicyFound: true,
			Verified:    true,
			Provider:    req.Provider,
		}, nil
	}

	resp, err := env.service.ProcessMessage(context.Background(), chat.ChatRequest{
		Message: "Please verify my Aetna policy AET123456789, Thomas White, born 1983-04-12",
	})
	require.NoError(t, err)

	assert.Equal(t, chat.StatusSuccess, resp.Result.Status)
	assert.Equal(t, "aetna", captured.Provider)
	assert.Equal(t, "1983-04-12", captured.PolicyHolderDOB)
}

func TestJourney_ReverificationFailureMovesBackToCheckIn(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"patient_name": "Jane Doe",
			"doctor_name":  "Dr. Patel",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider":           "aetna",
			"policy_number":      "AET123456789",
			"policy_holder_name": "Jane Doe",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"policy_number": "AET000000000",
		}),
	)
	verifyCalls := 0
	env.insurance.verifyFn = func(req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
		verifyCalls++
		if verifyCalls == 1 {
			return &insurance.VerificationResult{
				PolicyFound: true,
				Verified:    true,
				Provider:    req.Provider,
			}, nil
		}
		return &insurance.VerificationResult{
			PolicyFound: false,
			Verified:    false,
			Provider:    req.Provider,
			Errors:      []string{"Policy number not found in provider records."},
		}, nil
	}
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I'm Jane Doe, arriving for Dr. Patel",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	require.Equal(t, "check_in", resp.Journey.Stage)
	sessionID := resp.SessionID

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "My insurance is Aetna, policy AET123456789",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	require.Equal(t, "navigation", resp.Journey.Stage)

	// New insurance details past check-in trigger a re-verification; the
	// failure moves the journey back to check-in with the session intact.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "Wait, my policy number is actually AET000000000",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "check_in", resp.Journey.Stage)
	assert.Equal(t, chat.StatusFailed, resp.Result.Status)
	assert.Equal(t, 1, resp.Journey.Retries)
	assert.Contains(t, resp.Result.Message, "redo check-in")
	assert.Equal(t, 2, verifyCalls)
}

func TestJourney_DirectionsMentioningLocationDoNotAdvance(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"patient_name": "John Doe",
			"doctor_name":  "Dr. Smith",
		}),
		classified(nlp.IntentInsuranceVerification, 0.9, map[string]interface{}{
			"provider":           "aetna",
			"policy_number":      "AET123456789",
			"policy_holder_name": "John Doe",
		}),
		classified(nlp.IntentHospitalNavigation, 0.9, map[string]interface{}{
			"destination": "pharmacy",
		}),
	)
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I'm John Doe, here for Dr. Smith",
	})
	require.NoError(t, err)
	sessionID := resp.SessionID

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "Aetna, policy AET123456789, under John Doe",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	require.Equal(t, "navigation", resp.Journey.Stage)

	// A directions question that merely mentions a location is not an
	// arrival statement.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "How do I get to the pharmacy at the east wing?",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "navigation", resp.Journey.Stage)
}

func TestHasArrivalSignal(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"explicit arrival", "I have arrived", true},
		{"i'm here", "ok I'm here now", true},
		{"i'm at the department", "I'm at the cardiology desk", true},
		{"made it", "made it to the clinic", true},
		{"directions question", "how do I get to the pharmacy at the east wing", false},
		{"location mention only", "is the cafe at the main lobby open", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, hasArrivalSignal(tc.text))
		})
	}
}

func TestJourney_ConfidentSwitchNeedsConfirmation(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, nil),
		classified(nlp.IntentAppointmentBooking, 0.9, nil),
	)
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I just arrived at the hospital",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	sessionID := resp.SessionID

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "Actually I want to book a new appointment for next month",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, chat.StatusNeedsConfirmation, resp.Result.Status)
	assert.True(t, resp.RequiresMoreInfo)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "arrival", resp.Journey.Stage)

	// Confirming abandons the journey and routes the original request.
	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "yes",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Journey)
	assert.Equal(t, chat.StatusNeedsInfo, resp.Result.Status)

	session, err := env.store.Get(ctx, sessionID)
	require.NoError(t, err)
	archived, ok := session.Metadata["archived_journeys"].([]interface{})
	require.True(t, ok)
	require.Len(t, archived, 1)
	record, ok := archived[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abandoned", record["outcome"])
}

func TestJourney_DeclinedSwitchKeepsJourney(t *testing.T) {
	env := newTestEnv(
		classified(nlp.IntentHospitalNavigation, 0.9, nil),
		classified(nlp.IntentAppointmentBooking, 0.9, nil),
	)
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I just arrived at the hospital",
	})
	require.NoError(t, err)
	sessionID := resp.SessionID

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "Book me a new appointment instead",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, chat.StatusNeedsConfirmation, resp.Result.Status)

	resp, err = env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message:   "no",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Journey)
	assert.Equal(t, "arrival", resp.Journey.Stage)
}

func TestGetConversation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I have a headache",
	})
	require.NoError(t, err)

	conversation, err := env.service.GetConversation(ctx, resp.SessionID)
	require.NoError(t, err)
	require.Len(t, conversation.Turns, 2)
	assert.Equal(t, "user", conversation.Turns[0].Role)
	assert.Equal(t, "I have a headache", conversation.Turns[0].Content)
	assert.Equal(t, "assistant", conversation.Turns[1].Role)

	_, err = env.service.GetConversation(ctx, "session_missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestClearConversation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	err := env.service.ClearConversation(ctx, "session_missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)

	resp, err := env.service.ProcessMessage(ctx, chat.ChatRequest{
		Message: "I have a sore throat",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.ClearConversation(ctx, resp.SessionID))

	_, err = env.store.Get(ctx, resp.SessionID)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestGetCapabilities(t *testing.T) {
	env := newTestEnv()

	capabilities := env.service.GetCapabilities(context.Background())
	require.Len(t, capabilities.Capabilities, 6)

	intents := make(map[string]bool)
	for _, capability := range capabilities.Capabilities {
		intents[capability.Intent] = true
		assert.NotEmpty(t, capability.Description)
		assert.NotEmpty(t, capability.Example)
	}
	assert.True(t, intents[string(nlp.IntentEmergency)])
	assert.True(t, intents[string(nlp.IntentHospitalNavigation)])
}
