package insurance

import "HealthAssistant/internal/entity"

type VerifyRequest struct {
	Provider         string `json:"provider" validate:"required,min=2,max=100"`
	PolicyNumber     string `json:"policy_number" validate:"required,min=3,max=50"`
	PolicyHolderName string `json:"policy_holder_name" validate:"required,min=2,max=100"`
	PolicyHolderDOB  string `json:"policy_holder_dob,omitempty"`
}

type VerificationResult struct {
	PolicyFound    bool                   `json:"policy_found"`
	Verified       bool                   `json:"verified"`
	Provider       string                 `json:"provider"`
	Details        map[string]interface{} `json:"details,omitempty"`
	Errors         []string               `json:"errors,omitempty"`
	Warnings       []string               `json:"warnings,omitempty"`
	VerifiedFields map[string]bool        `json:"verified_fields,omitempty"`
}

type ProviderInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

type ProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
}

// PolicyDetails flattens a CSV record into the details payload returned
// to callers.
func PolicyDetails(record entity.PolicyRecord) map[string]interface{} {
	return map[string]interface{}{
		"policy_number":      record.PolicyNumber,
		"group_number":       record.GroupNumber,
		"policy_holder_name": record.PolicyHolderName,
		"relationship":       record.Relationship,
		"status":             record.Status,
		"coverage_type":      record.CoverageType,
		"copay_amount":       record.CopayAmount,
		"effective_date":     record.EffectiveDate,
		"expiration_date":    record.ExpirationDate,
	}
}
