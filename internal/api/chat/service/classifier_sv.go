package chatService

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/gemini"
	"HealthAssistant/pkg/nlp"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	llmTimeout    = 10 * time.Second
	historyWindow = 6
)

// classify runs the LLM path under a timeout, always runs the rule
// path, and lets the arbiter merge the two. A dead LLM never fails the
// turn; the rules carry it.
func (s *chatService) classify(ctx context.Context, text string, history []entity.Turn) (nlp.ClassificationResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var llmResult *nlp.ClassificationResult
	if s.geminiClient != nil && text != "" {
		llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
		result, err := s.geminiClient.ClassifyIntent(llmCtx, text, historyMessages(history))
		cancel()

		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("LLM classification unavailable, using rule fallback")
		} else {
			llmResult = result
		}
	}

	ruleResult := nlp.ClassifyWithRules(text)

	merged := nlp.Arbitrate(llmResult, ruleResult)
	if merged.Intent == "" {
		return nlp.ClassificationResult{}, chat.ErrExtractionFailed
	}

	return merged, nil
}

// historyMessages converts the most recent turns into the context
// window handed to the LLM.
func historyMessages(history []entity.Turn) []gemini.HistoryMessage {
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}

	messages := make([]gemini.HistoryMessage, 0, len(history)-start)
	for _, turn := range history[start:] {
		messages = append(messages, gemini.HistoryMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return messages
}
