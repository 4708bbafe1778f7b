package insuranceService

import (
	"HealthAssistant/internal/api/insurance"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/gemini"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type IInsuranceService interface {
	Verify(ctx context.Context, req insurance.VerifyRequest) (*insurance.VerificationResult, error)
	ListProviders(ctx context.Context) insurance.ProvidersResponse
}

type insuranceService struct {
	log          *logrus.Logger
	geminiClient gemini.IGemini
	dataPath     string
}

func New(log *logrus.Logger, geminiClient gemini.IGemini) IInsuranceService {
	dataPath := os.Getenv("INSURANCE_DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join("data", "insurance")
	}

	return &insuranceService{
		log:          log,
		geminiClient: geminiClient,
		dataPath:     dataPath,
	}
}

func (s *insuranceService) Verify(ctx context.Context, req insurance.VerifyRequest) (*insurance.VerificationResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	canonical, csvFile, err := s.detectProvider(ctx, req.Provider)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"provider":   req.Provider,
		}).Warn("Unknown insurance provider")
		return nil, err
	}

	records, err := s.loadPolicyCSV(ctx, csvFile)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"provider":   canonical,
			"error":      err.Error(),
		}).Error("Failed to load provider policy data")
		return nil, insurance.ErrProviderDataMissing
	}

	for _, record := range records {
		if !strings.EqualFold(record.PolicyNumber, strings.TrimSpace(req.PolicyNumber)) {
			continue
		}
		result := s.verifyRecord(record, req)
		result.Provider = canonical

		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"provider":      canonical,
			"policy_number": record.PolicyNumber,
			"verified":      result.Verified,
		}).Info("Policy verification completed")

		return result, nil
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"provider":   canonical,
	}).Warn("Policy not found in provider records")

	return &insurance.VerificationResult{
		PolicyFound: false,
		Verified:    false,
		Provider:    canonical,
		Errors:      []string{fmt.Sprintf("Policy number %s not found in our records", req.PolicyNumber)},
	}, nil
}

// verifyRecord checks a found policy against the caller-supplied holder
// details. The policy is verified only when every checked field agrees.
func (s *insuranceService) verifyRecord(record entity.PolicyRecord, req insurance.VerifyRequest) *insurance.VerificationResult {
	var errs []string
	var warnings []string
	verified := true

	nameMatches := strings.EqualFold(strings.TrimSpace(record.PolicyHolderName), strings.TrimSpace(req.PolicyHolderName))
	if !nameMatches {
		errs = append(errs, fmt.Sprintf("Policy holder name mismatch. Expected: %s, Got: %s",
			record.PolicyHolderName, req.PolicyHolderName))
		verified = false
	}

	dobMatches := true
	if req.PolicyHolderDOB != "" {
		dobMatches = record.PolicyHolderDOB == req.PolicyHolderDOB
		if !dobMatches {
			errs = append(errs, fmt.Sprintf("Date of birth mismatch. Expected: %s, Got: %s",
				record.PolicyHolderDOB, req.PolicyHolderDOB))
			verified = false
		}
	}

	statusActive := strings.EqualFold(record.Status, "active")
	if !statusActive {
		errs = append(errs, fmt.Sprintf("Policy is not active. Current status: %s", strings.ToLower(record.Status)))
		verified = false
	}

	if record.ExpirationDate != "" {
		if expiry, err := time.Parse("2006-01-02", record.ExpirationDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Could not parse expiration date: %s", record.ExpirationDate))
		} else if expiry.Before(time.Now()) {
			errs = append(errs, fmt.Sprintf("Policy has expired on %s", record.ExpirationDate))
			verified = false
		}
	}

	if record.EffectiveDate != "" {
		if effective, err := time.Parse("2006-01-02", record.EffectiveDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Could not parse effective date: %s", record.EffectiveDate))
		} else if effective.After(time.Now()) {
			warnings = append(warnings, fmt.Sprintf("Policy is not yet effective. Effective date: %s", record.EffectiveDate))
		}
	}

	return &insurance.VerificationResult{
		PolicyFound: true,
		Verified:    verified,
		Details:     insurance.PolicyDetails(record),
		Errors:      errs,
		Warnings:    warnings,
		VerifiedFields: map[string]bool{
			"policy_number":      true,
			"policy_holder_name": nameMatches,
			"policy_holder_dob":  dobMatches,
			"status":             statusActive,
		},
	}
}

func (s *insuranceService) loadPolicyCSV(ctx context.Context, csvFile string) ([]entity.PolicyRecord, error) {
	path := filepath.Join(s.dataPath, csvFile)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no policy records in %s", csvFile)
	}

	colIndex := make(map[string]int)
	for i, col := range rows[0] {
		colIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]entity.PolicyRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, entity.PolicyRecord{
			PolicyNumber:     field(row, "policy_number"),
			GroupNumber:      field(row, "group_number"),
			PolicyHolderName: field(row, "policy_holder_name"),
			PolicyHolderDOB:  field(row, "policy_holder_dob"),
			Relationship:     field(row, "relationship"),
			Status:           field(row, "status"),
			CoverageType:     field(row, "coverage_type"),
			CopayAmount:      field(row, "copay_amount"),
			EffectiveDate:    field(row, "effective_date"),
			ExpirationDate:   field(row, "expiration_date"),
		})
	}

	return records, nil
}

func (s *insuranceService) ListProviders(ctx context.Context) insurance.ProvidersResponse {
	byCanonical := make(map[string][]string)
	for alias, canonical := range providerAliases {
		if alias != canonical {
			byCanonical[canonical] = append(byCanonical[canonical], alias)
		} else if _, exist := byCanonical[canonical]; !exist {
			byCanonical[canonical] = nil
		}
	}

	names := make([]string, 0, len(byCanonical))
	for name := range byCanonical {
		names = append(names, name)
	}
	sort.Strings(names)

	providers := make([]insurance.ProviderInfo, 0, len(names))
	for _, name := range names {
		aliases := byCanonical[name]
		sort.Strings(aliases)
		providers = append(providers, insurance.ProviderInfo{Name: name, Aliases: aliases})
	}

	return insurance.ProvidersResponse{Providers: providers}
}
