package chat

import "HealthAssistant/pkg/response"

var (
	ErrSessionNotFound    = response.NewError(404, "session not found")
	ErrSessionExists      = response.NewError(409, "session already exists")
	ErrExtractionFailed   = response.NewError(500, "failed to classify message")
	ErrEmptyMessage       = response.NewError(400, "message must not be empty")
	ErrSessionStoreFailed = response.NewError(500, "session store unavailable")
)
