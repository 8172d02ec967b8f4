package osint

import (
	"errors"
	"fmt"
)

// ConfigurationError reports missing credentials or setup. Surfaced before
// any request is attempted; never retried.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("osint: configuración incompleta: falta %s", e.Missing)
}

// UpstreamError reports a non-success response from the search backend.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("osint: el backend de búsqueda devolvió %d: %s", e.StatusCode, e.Body)
}

// EmptyResponseError reports a response with no usable text.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "osint: la respuesta de la IA no contiene texto"
}

// MalformedResponseError reports text that held no extractable JSON object,
// or JSON that failed to parse.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("osint: error de formato en la respuesta de la IA: %s", e.Reason)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUpstream reports whether err carries an UpstreamError, returning it.
func IsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsMalformed reports whether err is a MalformedResponseError.
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// IsEmptyResponse reports whether err is an EmptyResponseError.
func IsEmptyResponse(err error) bool {
	var ee *EmptyResponseError
	return errors.As(err, &ee)
}
