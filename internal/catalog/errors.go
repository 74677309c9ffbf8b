package catalog

import "net/http"

// upstreamUnavailableError signals that the daemon's model list could not be
// fetched. The HTTP layer maps it to 500.
type upstreamUnavailableError struct{ cause error }

func (e upstreamUnavailableError) Error() string { return "failed to fetch models: " + e.cause.Error() }
func (e upstreamUnavailableError) Unwrap() error { return e.cause }
func (e upstreamUnavailableError) StatusCode() int { return http.StatusInternalServerError }

// ErrUpstreamUnavailable wraps a catalog fetch failure.
func ErrUpstreamUnavailable(cause error) error { return upstreamUnavailableError{cause: cause} }

// IsUpstreamUnavailable reports whether err is a catalog fetch failure.
func IsUpstreamUnavailable(err error) bool {
	_, ok := err.(upstreamUnavailableError)
	return ok
}

// noQualifyingModelsError is the empty-result condition. It carries the
// remediation hint shown to users.
type noQualifyingModelsError struct{ pullModel string }

func (e noQualifyingModelsError) Error() string {
	return "No chat models found. Please install one with: ollama pull " + e.pullModel
}
func (e noQualifyingModelsError) StatusCode() int { return http.StatusNotFound }

// ErrNoQualifyingModels constructs the empty-result error suggesting pullModel.
func ErrNoQualifyingModels(pullModel string) error {
	return noQualifyingModelsError{pullModel: pullModel}
}

// IsNoQualifyingModels reports whether err means no chat model is installed.
func IsNoQualifyingModels(err error) bool {
	_, ok := err.(noQualifyingModelsError)
	return ok
}
