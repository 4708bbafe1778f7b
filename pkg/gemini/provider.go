package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const providerPromptTemplate = `You are an insurance provider identification expert. Identify which
insurance provider the user is referring to.

User provided provider name: "%s"

Available providers in our system:
%s

Respond with ONLY a JSON object, no other text:
{"provider": "<canonical_provider_name or none>", "confidence": <0.0-1.0>}

Use "none" if the input does not match any available provider.`

type providerDetection struct {
	Provider   string  `json:"provider"`
	Confidence float64 `json:"confidence"`
}

func (g *geminiClient) DetectInsuranceProvider(ctx context.Context, providerName string, candidates []string) (string, error) {
	var list strings.Builder
	for i, candidate := range candidates {
		list.WriteString(fmt.Sprintf("%d. %s\n", i+1, candidate))
	}

	raw, err := g.generate(ctx, fmt.Sprintf(providerPromptTemplate, providerName, list.String()))
	if err != nil {
		return "", err
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object in provider detection response")
	}

	var detection providerDetection
	if err := jsoniter.Unmarshal([]byte(raw[start:end+1]), &detection); err != nil {
		return "", err
	}

	if detection.Provider == "" || detection.Provider == "none" {
		return "", errors.New("provider not recognized")
	}

	return detection.Provider, nil
}
