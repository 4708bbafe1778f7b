package chatService

import (
	"HealthAssistant/internal/api/appointment"
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/api/insurance"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/nlp"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const emergencyMessage = "This sounds like a medical emergency. Please call 911 or your local emergency number immediately, " +
	"or go to the nearest emergency room. Do not wait for an online response."

func (s *chatService) handleEmergency(cls nlp.ClassificationResult) chat.HandlerResult {
	matched := make([]string, 0, len(cls.Matches))
	for _, match := range cls.Matches {
		matched = append(matched, match.Keyword)
	}

	data := map[string]interface{}{
		"hotline": "911",
	}
	if len(matched) > 0 {
		data["matched_indicators"] = matched
	}
	if emergencyType, ok := cls.Entities["emergency_type"]; ok {
		data["emergency_type"] = emergencyType
	}

	return chat.HandlerResult{
		Status:  chat.StatusEmergency,
		Message: emergencyMessage,
		Data:    data,
	}
}

const symptomDisclaimer = "Please note this is general information, not a medical diagnosis."

// Severity levels for non-emergency symptom turns. Emergencies never
// reach this handler; the classifier routes them first.
const (
	severityHomeCare      = "home_care"
	severityConsultDoctor = "consult_doctor"
	severityUrgentCare    = "urgent_care"
)

var urgentSymptomTerms = []string{
	"severe", "intense", "unbearable", "worst", "getting worse",
	"worsening", "high fever", "blood", "can't keep", "dehydrated",
}

var mildSymptomTerms = []string{
	"mild", "slight", "minor", "occasional", "a little", "light",
}

func assessSeverity(text string) string {
	lowered := strings.ToLower(text)
	for _, term := range urgentSymptomTerms {
		if strings.Contains(lowered, term) {
			return severityUrgentCare
		}
	}
	for _, term := range mildSymptomTerms {
		if strings.Contains(lowered, term) {
			return severityHomeCare
		}
	}
	return severityConsultDoctor
}

var symptomToSpecialty = []struct {
	term      string
	specialty string
}{
	{"chest pain", "cardiology"},
	{"heart", "cardiology"},
	{"palpitation", "cardiology"},
	{"asthma", "pulmonology"},
	{"pneumonia", "pulmonology"},
	{"wheez", "pulmonology"},
	{"shortness of breath", "pulmonology"},
	{"migraine", "neurology"},
	{"headache", "neurology"},
	{"dizz", "neurology"},
	{"numbness", "neurology"},
	{"rash", "dermatology"},
	{"skin", "dermatology"},
	{"itch", "dermatology"},
}

func suggestSpecialty(text string) string {
	lowered := strings.ToLower(text)
	for _, mapping := range symptomToSpecialty {
		if strings.Contains(lowered, mapping.term) {
			return mapping.specialty
		}
	}
	return "general medicine"
}

func (s *chatService) handleSymptoms(ctx context.Context, text string, cls nlp.ClassificationResult) chat.HandlerResult {
	requestID := contextPkg.GetRequestID(ctx)

	data := map[string]interface{}{}
	if symptoms, ok := cls.Entities["symptoms"]; ok {
		data["symptoms"] = symptoms
	}
	if duration, ok := cls.Entities["duration"]; ok {
		data["duration"] = duration
	}

	severity := assessSeverity(text)
	data["severity"] = severity
	switch severity {
	case severityUrgentCare:
		data["urgency"] = "within_24hrs"
	case severityConsultDoctor:
		data["urgency"] = "within_week"
	default:
		data["urgency"] = "monitor"
	}

	specialty := suggestSpecialty(text)
	data["suggested_specialty"] = specialty
	if s.appointments != nil && severity != severityHomeCare {
		doctors, err := s.appointments.GetDoctors(ctx, specialty)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"specialty":  specialty,
				"error":      err.Error(),
			}).Warn("Failed to match doctors for symptom guidance")
		} else if len(doctors) > 0 {
			data["matched_doctors"] = doctors
		}
	}

	if s.geminiClient != nil {
		llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
		answer, err := s.geminiClient.AnswerHealthQuestion(llmCtx, text)
		cancel()

		if err == nil {
			return chat.HandlerResult{
				Status:  chat.StatusSuccess,
				Message: answer,
				Data:    data,
			}
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Symptom guidance generation failed, using canned response")
	}

	var message string
	switch severity {
	case severityUrgentCare:
		message = "Based on what you've described, please seek medical attention within 24 hours. " +
			"Visit urgent care, and go to the emergency room if symptoms worsen. " + symptomDisclaimer
	case severityHomeCare:
		message = "These symptoms can likely be managed at home. Rest, stay hydrated, and monitor them daily. " +
			"See a doctor if they worsen or new symptoms develop. " + symptomDisclaimer
	default:
		message = "Thanks for describing your symptoms. It would be a good idea to see a doctor within the next 2-3 days. " +
			"Keep track of any changes in the meantime. " + symptomDisclaimer
	}

	return chat.HandlerResult{
		Status:  chat.StatusSuccess,
		Message: message,
		Data:    data,
	}
}

func (s *chatService) handleInsurance(ctx context.Context, cls nlp.ClassificationResult) (chat.HandlerResult, []string) {
	provider := entityString(cls.Entities, "provider", "provider_name", "insurance_provider")
	policyNumber := entityString(cls.Entities, "policy_number")
	holderName := entityString(cls.Entities, "policy_holder_name", "member_name", "patient_name")

	var missing []string
	if provider == "" {
		missing = append(missing, "What is your insurance provider name?")
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
			Message: "I can verify your insurance. I just need a few details.",
		}, missing
	}

	verification, err := s.insurance.Verify(ctx, insurance.VerifyRequest{
		Provider:         provider,
		PolicyNumber:     policyNumber,
		PolicyHolderName: holderName,
		PolicyHolderDOB:  entityString(cls.Entities, "policy_holder_dob", "dob", "date_of_birth"),
	})
	if err != nil {
		return chat.HandlerResult{
				Status:  chat.StatusFailed,
				Message: "I couldn't verify your insurance right now: " + err.Error(),
			}, []string{
				"Could you double-check the provider name and try again?",
			}
	}

	if !verification.Verified {
		reason := "the details didn't match our records"
		if len(verification.Errors) > 0 {
			reason = strings.ToLower(verification.Errors[0][:1]) + verification.Errors[0][1:]
		}
		return chat.HandlerResult{
				Status:  chat.StatusFailed,
				Message: fmt.Sprintf("I found your provider, but %s.", reason),
				Data:    map[string]interface{}{"verification": verification},
			}, []string{
				"Please double-check your policy number. What is it?",
			}
	}

	return chat.HandlerResult{
		Status:  chat.StatusSuccess,
		Message: fmt.Sprintf("Good news! Your %s policy %s is active and verified.", verification.Provider, policyNumber),
		Data:    map[string]interface{}{"verification": verification},
	}, nil
}

func (s *chatService) handleBooking(ctx context.Context, cls nlp.ClassificationResult) (chat.HandlerResult, []string) {
	requestID := contextPkg.GetRequestID(ctx)

	slotID := entityString(cls.Entities, "slot_id")
	patientName := entityString(cls.Entities, "patient_name", "name")
	patientEmail := entityString(cls.Entities, "patient_email", "email")
	patientPhone := entityString(cls.Entities, "patient_phone", "phone")
	reason := entityString(cls.Entities, "reason", "reason_for_visit")

	if slotID != "" && patientName != "" && patientEmail != "" && patientPhone != "" && reason != "" {
		booking, err := s.appointments.Book(ctx, appointment.BookingRequest{
			SlotID:          slotID,
			PatientName:     patientName,
			PatientEmail:    patientEmail,
			PatientPhone:    patientPhone,
			ReasonForVisit:  reason,
			AppointmentType: entityString(cls.Entities, "appointment_type"),
		})
		if err != nil {
			return chat.HandlerResult{
					Status:  chat.StatusFailed,
					Message: "I couldn't complete the booking: " + err.Error(),
				}, []string{
					"Would you like to pick a different slot?",
				}
		}

		return chat.HandlerResult{
			Status: chat.StatusSuccess,
			Message: fmt.Sprintf("Your appointment is booked! Confirmation code: %s. A confirmation email is on its way to %s.",
				booking.BookingID, patientEmail),
			Data: map[string]interface{}{"booking": booking},
		}, nil
	}

	// Not enough to book yet; surface available slots to choose from
	// when we can.
	data := map[string]interface{}{}
	specialty := entityString(cls.Entities, "specialty", "doctor_specialty")
	if s.appointments != nil {
		slots, err := s.appointments.GetAvailableSlots(ctx, "")
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to list available slots for booking prompt")
		} else {
			if specialty != "" {
				slots = filterSlotsBySpecialty(slots, specialty)
			}
			if len(slots) > 5 {
				slots = slots[:5]
			}
			data["available_slots"] = slots
		}
	}

	var missing []string
	if slotID == "" {
		missing = append(missing, "Which slot would you like? (pick a slot id from the list)")
	}
	if patientName == "" {
		missing = append(missing, "What is your full name?")
	}
	if patientEmail == "" {
		missing = append(missing, "What is your email address?")
	}
	if patientPhone == "" {
		missing = append(missing, "What is your phone number?")
	}
	if reason == "" {
		missing = append(missing, "What is the reason for your visit?")
	}

	return chat.HandlerResult{
		Status:  chat.StatusNeedsInfo,
		Message: "I can book that appointment. I just need a few more details.",
		Data:    data,
	}, missing
}

func (s *chatService) handleGeneralQuestion(ctx context.Context, text string) chat.HandlerResult {
	requestID := contextPkg.GetRequestID(ctx)

	if s.geminiClient != nil {
		llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
		answer, err := s.geminiClient.AnswerHealthQuestion(llmCtx, text)
		cancel()

		if err == nil {
			return chat.HandlerResult{
				Status:  chat.StatusSuccess,
				Message: answer,
			}
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("General question answering failed, using canned response")
	}

	return chat.HandlerResult{
		Status: chat.StatusSuccess,
		Message: "That's a good question. I can't look that up right now, but your doctor or pharmacist can give you " +
			"a reliable answer. " + symptomDisclaimer,
	}
}

func (s *chatService) handleUnknown() chat.HandlerResult {
	var lines []string
	for _, capability := range capabilityTable {
		lines = append(lines, fmt.Sprintf("- %s (e.g. %q)", capability.Description, capability.Example))
	}

	return chat.HandlerResult{
		Status: chat.StatusNeedsInfo,
		Message: "I'm not sure what you need help with. Here's what I can do:\n" +
			strings.Join(lines, "\n"),
		Data: map[string]interface{}{"capabilities": capabilityTable},
	}
}

func entityString(entities map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := entities[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func filterSlotsBySpecialty(slots []appointment.SlotResponse, specialty string) []appointment.SlotResponse {
	var filtered []appointment.SlotResponse
	for _, slot := range slots {
		if strings.EqualFold(slot.DoctorSpecialty, specialty) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
