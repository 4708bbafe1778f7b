package insurance

import "HealthAssistant/pkg/response"

var (
	ErrProviderNotSupported = response.NewError(400, "insurance provider not supported")
	ErrProviderDataMissing  = response.NewError(500, "insurance provider data unavailable")
	ErrPolicyNotFound       = response.NewError(404, "policy not found")
)
