package nlp

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// redFlagTerms are emergency indicators grouped by category. Any hit
// short-circuits classification into the emergency intent.
var redFlagTerms = map[string][]string{
	"cardiac": {
		"chest pain",
		"crushing chest pressure",
		"pain radiating to arm",
		"severe chest tightness",
		"heart attack",
	},
	"neurological": {
		"sudden severe headache",
		"worst headache of life",
		"slurred speech",
		"facial drooping",
		"loss of consciousness",
		"unconscious",
		"seizure",
		"stroke",
		"numbness on one side",
	},
	"respiratory": {
		"severe difficulty breathing",
		"cannot breathe",
		"can t breathe",
		"cannot speak in full sentences",
		"blue lips",
		"gasping for air",
		"choking",
	},
	"bleeding": {
		"uncontrolled bleeding",
		"bleeding heavily",
		"severe bleeding",
		"coughing up blood",
		"blood in vomit",
	},
	"allergic": {
		"severe allergic reaction",
		"throat swelling",
		"tongue swelling",
		"hives with breathing difficulty",
	},
	"general": {
		"emergency",
		"severe pain",
	},
}

var intentKeywords = map[Intent][]string{
	IntentInsuranceVerification: {
		"insurance", "policy", "coverage", "verify", "copay",
		"blue cross", "aetna", "cigna", "medicare", "medicaid", "humana",
	},
	IntentAppointmentBooking: {
		"book", "appointment", "schedule", "reserve", "see doctor",
		"reschedule", "cancel appointment",
	},
	IntentHospitalNavigation: {
		"where is", "how to get", "directions", "navigate",
		"cafeteria", "restroom", "pharmacy", "radiology", "wait time",
		"check in", "queue", "waiting room", "hospital visit",
		"arrived", "i m here", "just got here", "visit is over",
		"done with my visit", "heading home", "leaving now",
	},
	IntentSymptomAnalysis: {
		"pain", "ache", "fever", "cough", "cold", "headache", "dizzy",
		"nausea", "vomit", "tired", "fatigue", "sick", "hurt", "sore",
		"rash", "swollen",
	},
}

// classification priority when keyword sets overlap; symptoms last because
// symptom terms are the most common and least specific.
var intentOrder = []Intent{
	IntentInsuranceVerification,
	IntentAppointmentBooking,
	IntentHospitalNavigation,
	IntentSymptomAnalysis,
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "of": true,
	"i": true, "my": true, "me": true, "is": true, "am": true,
	"have": true, "has": true, "and": true, "or": true, "for": true,
	"in": true, "on": true, "with": true, "it": true, "been": true,
}

var intentFollowUps = map[Intent][]string{
	IntentInsuranceVerification: {
		"What is your insurance provider name?",
		"What is your policy number?",
	},
	IntentAppointmentBooking: {
		"What is your full name?",
		"What is your email address?",
		"What is your phone number?",
		"What is the reason for your visit?",
	},
	IntentSymptomAnalysis: {
		"How long have you had these symptoms?",
		"What is your age?",
	},
}

// ClassifyWithRules is the deterministic fallback classifier. It never
// fails; emergency red flags are checked before anything else.
func ClassifyWithRules(text string) ClassificationResult {
	clean := cleanText(text)
	if clean == "" {
		return ClassificationResult{
			Intent:     IntentUnknown,
			Confidence: 0,
			Reasoning:  "empty input",
			Entities:   map[string]interface{}{},
			Source:     "rules",
		}
	}

	if result, ok := matchRedFlags(clean, text); ok {
		return result
	}

	tokens := extractTokens(clean)

	for _, intent := range intentOrder {
		matches := matchKeywords(clean, tokens, intentKeywords[intent])
		if len(matches) == 0 {
			continue
		}

		base := 0.6
		if intent == IntentInsuranceVerification || intent == IntentHospitalNavigation {
			base = 0.7
		}
		confidence := math.Min(base+0.1*float64(len(matches)-1), 0.85)

		result := ClassificationResult{
			Intent:            intent,
			Confidence:        confidence,
			Reasoning:         "keyword match: " + matchedKeywords(matches),
			Entities:          entitiesFor(intent, text),
			FollowUpQuestions: intentFollowUps[intent],
			RequiresMoreInfo:  len(intentFollowUps[intent]) > 0,
			Matches:           matches,
			Source:            "rules",
		}
		return result
	}

	return ClassificationResult{
		Intent:     IntentGeneralHealthQuestion,
		Confidence: 0.5,
		Reasoning:  "no specific intent detected, assuming general question",
		Entities:   map[string]interface{}{"question": text},
		Source:     "rules",
	}
}

// ContainsRedFlag reports whether the text carries an emergency indicator.
// Used by handlers that must escalate regardless of routed intent.
func ContainsRedFlag(text string) bool {
	_, ok := matchRedFlags(cleanText(text), text)
	return ok
}

func matchRedFlags(clean, original string) (ClassificationResult, bool) {
	var matches []MatchResult
	category := ""

	for cat, terms := range redFlagTerms {
		for _, term := range terms {
			if strings.Contains(clean, cleanText(term)) {
				matches = append(matches, MatchResult{Keyword: term, Score: 1.0, Type: "red_flag"})
				if category == "" {
					category = cat
				}
			}
		}
	}

	if len(matches) == 0 {
		return ClassificationResult{}, false
	}

	confidence := math.Min(EmergencyConfidenceFloor+0.02*float64(len(matches)-1), 0.98)

	return ClassificationResult{
		Intent:     IntentEmergency,
		Confidence: confidence,
		Reasoning:  "emergency red-flag terms detected",
		Entities: map[string]interface{}{
			"symptoms":       []string{original},
			"emergency_type": category,
		},
		Matches: matches,
		Source:  "rules",
	}, true
}

func matchKeywords(clean string, tokens []string, keywords []string) []MatchResult {
	var matches []MatchResult

	for _, keyword := range keywords {
		kw := cleanText(keyword)
		if strings.Contains(kw, " ") {
			if strings.Contains(clean, kw) {
				matches = append(matches, MatchResult{Keyword: keyword, Score: 1.0, Type: "phrase"})
			}
			continue
		}
		for _, token := range tokens {
			if token == kw {
				matches = append(matches, MatchResult{Keyword: keyword, Score: 1.0, Type: "exact"})
				break
			}
		}
	}

	return matches
}

func matchedKeywords(matches []MatchResult) string {
	words := make([]string, 0, len(matches))
	for _, m := range matches {
		words = append(words, m.Keyword)
	}
	return strings.Join(words, ", ")
}

func entitiesFor(intent Intent, text string) map[string]interface{} {
	switch intent {
	case IntentSymptomAnalysis:
		return map[string]interface{}{"symptoms": []string{text}}
	case IntentHospitalNavigation:
		return map[string]interface{}{"location_query": text}
	case IntentAppointmentBooking:
		return map[string]interface{}{"appointment_type": "in-person"}
	default:
		return map[string]interface{}{}
	}
}

func cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	words := strings.Fields(result)
	return strings.Join(words, " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func extractTokens(text string) []string {
	words := strings.Fields(text)
	var tokens []string

	for _, word := range words {
		if len(word) > 1 && !stopWords[word] {
			tokens = append(tokens, word)
		}
	}

	return tokens
}
