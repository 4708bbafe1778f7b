package insuranceService

import (
	"HealthAssistant/internal/api/insurance"
	contextPkg "HealthAssistant/pkg/context"
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// providerCSVMapping maps canonical provider names to their CSV files.
var providerCSVMapping = map[string]string{
	"blue_cross_blue_shield": "blue_cross_blue_shield.csv",
	"bcbs":                   "blue_cross_blue_shield.csv",
	"aetna":                  "aetna.csv",
	"united_healthcare":      "united_healthcare.csv",
	"uhc":                    "united_healthcare.csv",
	"cigna":                  "cigna.csv",
	"humana":                 "humana.csv",
	"kaiser_permanente":      "kaiser.csv",
	"kaiser":                 "kaiser.csv",
	"anthem":                 "anthem.csv",
	"medicare":               "medicare.csv",
	"medicaid":               "medicaid.csv",
}

var providerAliases = map[string]string{
	"blue cross blue shield": "blue_cross_blue_shield",
	"bcbs":                   "bcbs",
	"blue cross":             "bcbs",
	"blue shield":            "bcbs",
	"aetna":                  "aetna",
	"united healthcare":      "united_healthcare",
	"united":                 "united_healthcare",
	"uhc":                    "uhc",
	"cigna":                  "cigna",
	"humana":                 "humana",
	"kaiser permanente":      "kaiser_permanente",
	"kaiser":                 "kaiser",
	"anthem":                 "anthem",
	"wellpoint":              "anthem",
	"medicare":               "medicare",
	"medicaid":               "medicaid",
}

// detectProvider resolves a free-text provider name to the CSV file that
// backs it. Alias matching runs first; the LLM is only consulted when
// the aliases produce nothing.
func (s *insuranceService) detectProvider(ctx context.Context, providerName string) (string, string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	normalized := strings.ToLower(strings.TrimSpace(providerName))

	if canonical, ok := providerAliases[normalized]; ok {
		return canonical, providerCSVMapping[canonical], nil
	}

	// Substring pass for inputs like "my insurance is with Cigna".
	for alias, canonical := range providerAliases {
		if strings.Contains(normalized, alias) {
			return canonical, providerCSVMapping[canonical], nil
		}
	}

	if s.geminiClient != nil {
		canonical, err := s.geminiClient.DetectInsuranceProvider(ctx, providerName, canonicalProviders())
		if err == nil {
			canonical = strings.ToLower(strings.TrimSpace(canonical))
			if csvFile, ok := providerCSVMapping[canonical]; ok {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"input":      providerName,
					"detected":   canonical,
				}).Info("Provider detected via LLM")
				return canonical, csvFile, nil
			}
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("LLM provider detection failed, falling back to aliases only")
		}
	}

	return "", "", insurance.ErrProviderNotSupported
}

func canonicalProviders() []string {
	seen := make(map[string]bool)
	var providers []string
	for _, canonical := range providerAliases {
		if !seen[canonical] {
			seen[canonical] = true
			providers = append(providers, canonical)
		}
	}
	return providers
}
