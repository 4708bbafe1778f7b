package entity

// PolicyRecord is one row of a provider's policy CSV.
type PolicyRecord struct {
	PolicyNumber     string `json:"policy_number"`
	GroupNumber      string `json:"group_number"`
	PolicyHolderName string `json:"policy_holder_name"`
	PolicyHolderDOB  string `json:"policy_holder_dob"`
	Relationship     string `json:"relationship"`
	Status           string `json:"status"`
	CoverageType     string `json:"coverage_type"`
	CopayAmount      string `json:"copay_amount"`
	EffectiveDate    string `json:"effective_date"`
	ExpirationDate   string `json:"expiration_date"`
}
