// Package response defines the canonical wire envelope shared by every
// endpoint: {"ok":true,"data":...} on success, {"ok":false,"error":{...}}
// on failure.
package response

import "github.com/labstack/echo/v4"

// Envelope is the success wrapper for all API responses.
type Envelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// ErrorBody describes one failure in the error envelope. Source names the
// failing subsystem when it helps the caller; Detail is drawn from a fixed
// message table so internals never leak.
type ErrorBody struct {
	Source string `json:"source,omitempty"`
	Detail string `json:"detail"`
}

// ErrorEnvelope is the error wrapper for all API errors.
type ErrorEnvelope struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// OK renders a success envelope with the given status code.
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{OK: true, Data: data})
}
