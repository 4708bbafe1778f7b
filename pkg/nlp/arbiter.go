package nlp

// Arbitrate merges the LLM verdict with the rule-based one. It is a pure
// function: identical inputs always produce the identical output.
//
// Policy:
//   - no LLM result: the rule verdict stands.
//   - the rule path found an emergency: emergency wins regardless of the
//     LLM verdict (fail-safe bias toward escalation); the LLM result is
//     taken only when it marks an emergency with higher confidence.
//   - LLM confidence at or above the accept threshold: trust the LLM.
//   - otherwise prefer whichever verdict carries higher confidence, the
//     rule verdict on a tie.
func Arbitrate(llm *ClassificationResult, rule ClassificationResult) ClassificationResult {
	if llm == nil {
		return rule
	}

	if rule.Intent == IntentEmergency {
		if llm.Intent == IntentEmergency && llm.Confidence > rule.Confidence {
			return *llm
		}
		return rule
	}

	if llm.Confidence >= AcceptThreshold {
		return *llm
	}

	if llm.Confidence > rule.Confidence {
		return *llm
	}
	return rule
}
