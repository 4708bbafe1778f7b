package gemini

import (
	"context"
	"fmt"
)

const answerPromptTemplate = `You are a helpful healthcare assistant. A user has asked:

"%s"

Provide a clear, accurate and helpful response. Keep it concise (3-5 sentences).

IMPORTANT:
- Always include a disclaimer that this is general information and not medical advice.
- If the question is about specific symptoms, suggest describing them for a symptom analysis.
- Be supportive and empathetic.

Respond in a conversational tone.`

func (g *geminiClient) AnswerHealthQuestion(ctx context.Context, question string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(answerPromptTemplate, question))
}
