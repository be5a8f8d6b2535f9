package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records request and recommendation data as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are dropped by the SDK when Sentry is not configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	success := statusCode < successStatusCodeThreshold
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", success))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordRecommendation records the key estimate and result size of a
// recommendation request on the current transaction
func (m *SentryMetrics) RecordRecommendation(ctx context.Context, keyGuess string, confidence float64, count int, source string) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("harmony.key_guess", keyGuess)
		transaction.SetData("harmony.confidence", confidence)
		transaction.SetData("harmony.recommendations", count)
	}

	span := sentry.StartSpan(ctx, "harmony.recommendation")
	defer span.Finish()

	span.SetTag("key_guess", keyGuess)
	span.SetTag("current_chord_source", source)
	span.SetData("confidence", confidence)
	span.SetData("recommendations", count)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Recommendation: %s", keyGuess)
}
