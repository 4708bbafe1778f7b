package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"HealthAssistant/pkg/nlp"
)

const classifyPromptTemplate = `You are an intent classifier for a healthcare assistant. Analyze the user's input and determine their intent, then extract relevant information.
%s
Current user input:
"%s"

Available intents:
1. symptom_analysis - user describes symptoms or health problems.
   Extract: symptoms (list), duration, severity_1_10, age, existing_conditions, medications, allergies
2. insurance_verification - user wants insurance verified or discusses policy details.
   Extract: provider_name, policy_number, policy_holder_name, dob, group_number
3. appointment_booking - user wants to book an appointment or find a doctor.
   Extract: specialty, preferred_date, preferred_time, reason, doctor_name, patient_name, patient_email, patient_phone, appointment_type ("in-person" or "telemedicine")
4. hospital_navigation - user needs directions, amenities, check-in, queue or wait-time help inside the hospital.
   Extract: location_query, destination, amenity_type, patient_name, doctor_name, department
5. general_health_question - general medical information or wellness advice.
   Extract: topic, question_type
6. emergency - medical emergency requiring immediate attention (chest pain, can't breathe, severe bleeding, loss of consciousness).
   Extract: emergency_type, symptoms

Rules:
- If the input contains emergency red flags, classify as "emergency" with high confidence.
- Extract entities from the current input AND the previous conversation.
- If critical information is missing, set requires_more_info=true and provide follow_up_questions.
- Infer appointment_type from context ("video call", "online" -> "telemedicine").

Respond ONLY with valid JSON in exactly this format:
{"intent": "symptom_analysis", "confidence": 0.95, "reasoning": "...", "extracted_entities": {}, "requires_more_info": false, "follow_up_questions": []}

Valid intent values: symptom_analysis, insurance_verification, appointment_booking, hospital_navigation, general_health_question, emergency, unknown`

// llmClassification mirrors the JSON contract above; intent stays a plain
// string so an off-schema value can be mapped to unknown instead of failing.
type llmClassification struct {
	Intent            string                 `json:"intent"`
	Confidence        float64                `json:"confidence"`
	Reasoning         string                 `json:"reasoning"`
	Entities          map[string]interface{} `json:"extracted_entities"`
	RequiresMoreInfo  bool                   `json:"requires_more_info"`
	FollowUpQuestions []string               `json:"follow_up_questions"`
}

func (g *geminiClient) ClassifyIntent(ctx context.Context, text string, history []HistoryMessage) (*nlp.ClassificationResult, error) {
	var contextBlock strings.Builder
	if len(history) > 0 {
		contextBlock.WriteString("\nPrevious conversation:\n")
		for _, msg := range history {
			contextBlock.WriteString(fmt.Sprintf("- %s: %s\n", msg.Role, msg.Content))
		}
	}

	prompt := fmt.Sprintf(classifyPromptTemplate, contextBlock.String(), text)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := parseClassification(raw)
	if err != nil {
		return nil, err
	}

	result := &nlp.ClassificationResult{
		Intent:            nlp.ParseIntent(parsed.Intent),
		Confidence:        clamp01(parsed.Confidence),
		Reasoning:         parsed.Reasoning,
		Entities:          parsed.Entities,
		RequiresMoreInfo:  parsed.RequiresMoreInfo,
		FollowUpQuestions: parsed.FollowUpQuestions,
		Source:            "llm",
	}
	if result.Entities == nil {
		result.Entities = map[string]interface{}{}
	}

	if result.Intent == nlp.IntentAppointmentBooking {
		backfillBookingQuestions(result)
	}

	return result, nil
}

func parseClassification(raw string) (*llmClassification, error) {
	jsonStart := strings.Index(raw, "{")
	jsonEnd := strings.LastIndex(raw, "}")

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, errors.New("cannot find valid JSON in response")
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(raw[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w", err)
	}

	if parsed.Intent == "" {
		return nil, errors.New("classification missing intent field")
	}

	return &parsed, nil
}

// Booking needs patient contact details before a slot can be confirmed; the
// model does not always ask for them, so the gaps are turned into follow-up
// questions here.
func backfillBookingQuestions(result *nlp.ClassificationResult) {
	fieldQuestions := []struct {
		field    string
		question string
	}{
		{"patient_name", "What is your full name?"},
		{"patient_email", "What is your email address?"},
		{"patient_phone", "What is your phone number?"},
		{"reason", "What is the reason for your visit?"},
	}

	var missing []string
	for _, fq := range fieldQuestions {
		if v, ok := result.Entities[fq.field]; !ok || v == nil || v == "" {
			missing = append(missing, fq.question)
		}
	}

	if len(missing) > 0 {
		result.RequiresMoreInfo = true
		result.FollowUpQuestions = missing
	}

	if v, ok := result.Entities["appointment_type"]; !ok || v == nil || v == "" {
		result.Entities["appointment_type"] = "in-person"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
