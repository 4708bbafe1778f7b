package nlp

type Intent string

const (
	IntentSymptomAnalysis       Intent = "symptom_analysis"
	IntentInsuranceVerification Intent = "insurance_verification"
	IntentAppointmentBooking    Intent = "appointment_booking"
	IntentHospitalNavigation    Intent = "hospital_navigation"
	IntentGeneralHealthQuestion Intent = "general_health_question"
	IntentEmergency             Intent = "emergency"
	IntentUnknown               Intent = "unknown"
)

// AcceptThreshold is the confidence below which a classification is not
// trusted to route on its own or to advance a journey stage.
const AcceptThreshold = 0.6

// EmergencyConfidenceFloor is the minimum confidence assigned whenever an
// emergency red-flag term is present in the input.
const EmergencyConfidenceFloor = 0.9

var validIntents = map[Intent]bool{
	IntentSymptomAnalysis:       true,
	IntentInsuranceVerification: true,
	IntentAppointmentBooking:    true,
	IntentHospitalNavigation:    true,
	IntentGeneralHealthQuestion: true,
	IntentEmergency:             true,
	IntentUnknown:               true,
}

func ParseIntent(s string) Intent {
	if validIntents[Intent(s)] {
		return Intent(s)
	}
	return IntentUnknown
}

func (i Intent) String() string {
	return string(i)
}

type ClassificationResult struct {
	Intent            Intent                 `json:"intent"`
	Confidence        float64                `json:"confidence"`
	Reasoning         string                 `json:"reasoning"`
	Entities          map[string]interface{} `json:"extracted_entities"`
	FollowUpQuestions []string               `json:"follow_up_questions"`
	RequiresMoreInfo  bool                   `json:"requires_more_info"`
	Matches           []MatchResult          `json:"matches,omitempty"`
	Source            string                 `json:"source,omitempty"` // "llm" or "rules"
}

type MatchResult struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"` // exact, phrase, red_flag
}
