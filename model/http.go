package model

// ParseResponse is the HTTP shape of a parse call.
type ParseResponse struct {
	Score    *Song    `json:"score,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
