package rag

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/GoPDFChat/internal/rag/llm"
)

// failure reasons, used as metric labels and in logs
const (
	reasonMissingCredential = "missing_credential"
	reasonEmptyResponse     = "empty_response"
	reasonTimeout           = "timeout"
	reasonCancelled         = "cancelled"
	reasonQuota             = "quota"
	reasonAuth              = "auth"
	reasonProvider          = "provider_error"
)

var providerErrorPatterns = []struct {
	pattern string
	reason  string
}{
	{"rate limit", reasonQuota},
	{"quota", reasonQuota},
	{"resource_exhausted", reasonQuota},
	{"429", reasonQuota},
	{"api key", reasonAuth},
	{"unauthorized", reasonAuth},
	{"permission", reasonAuth},
	{"401", reasonAuth},
	{"403", reasonAuth},
}

// failureReason reduces a provider error to a short label that is safe to log and count.
func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrMissingCredential):
		return reasonMissingCredential
	case errors.Is(err, llm.ErrEmptyResponse):
		return reasonEmptyResponse
	case errors.Is(err, context.DeadlineExceeded):
		return reasonTimeout
	case errors.Is(err, context.Canceled):
		return reasonCancelled
	}

	lower := strings.ToLower(err.Error())
	for _, p := range providerErrorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.reason
		}
	}
	return reasonProvider
}
