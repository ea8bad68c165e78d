package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is one text-generation backend behind the router.
type Provider interface {
	// Name is the stable label reported as model_used.
	Name() string
	// Configured reports whether the backend has credentials to call.
	Configured() bool
	Call(ctx context.Context, prompt, system string, maxTokens int) (string, error)
}

// StatusError reports a non-success HTTP reply from a provider API.
type StatusError struct {
	Provider   string
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "provider status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("%s %s status: %s", e.Provider, e.Operation, e.Status)
	}
	return fmt.Sprintf("%s %s status: %s: %s", e.Provider, e.Operation, e.Status, strings.TrimSpace(e.Body))
}
