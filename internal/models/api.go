package models

import "github.com/google/uuid"

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CheckInEvent is published on the tenant topic whenever a check-in changes.
type CheckInEvent struct {
	Type     string    `json:"type"` // "checkin.created" | "checkin.cancelled"
	TenantID uuid.UUID `json:"tenant_id"`
	CheckIn  *CheckIn  `json:"check_in"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
