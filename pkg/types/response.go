// Package types holds the JSON envelopes the dashboard and operator clients
// consume. Every endpoint wraps its payload in one of these two shapes.
package types

// SuccessEnvelope wraps alert, resource, stats and session payloads under a
// single data key so polling clients can decode uniformly.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details carries field-level
// validation maps and the redirect_to hint auth failures attach.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
