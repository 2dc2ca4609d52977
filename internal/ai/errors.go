package ai

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
)

// APIError carries an HTTP-like status from an upstream AI provider.
type APIError struct {
	Status     int
	Message    string
	RetryAfter time.Duration // from a Retry-After header, 0 when absent
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// ErrTimeout marks a call abandoned by the request-timeout guard.
var ErrTimeout = &APIError{Status: http.StatusGatewayTimeout, Message: "request timed out"}

var (
	retryableRe  = regexp.MustCompile(`(?i)503|service unavailable|overloaded|temporar|quota`)
	quotaRe      = regexp.MustCompile(`(?i)quota`)
	retryDelayRe = regexp.MustCompile(`retryDelay["':\s]*(\d+)`)
)

func statusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return 0
}

// Retryable reports whether an upstream error is worth retrying: 429, any 5xx,
// or a message matching the transient-failure patterns. Everything else is
// fatal and must propagate without delay.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if s := statusOf(err); s == http.StatusTooManyRequests || (s >= 500 && s <= 599) {
		return true
	}
	return retryableRe.MatchString(err.Error())
}

// IsQuota reports whether the error is a rate-limit/quota condition, which
// gets the longer backoff path.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if statusOf(err) == http.StatusTooManyRequests {
		return true
	}
	return quotaRe.MatchString(err.Error())
}

// IsTimeout reports whether the error was synthesized by the timeout guard.
func IsTimeout(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusGatewayTimeout && ae.Message == ErrTimeout.Message
}

// retryAfterHint extracts a server-specified wait: an explicit Retry-After
// carried on the error, or a "retryDelay:<seconds>" fragment in the message.
func retryAfterHint(err error) time.Duration {
	var ae *APIError
	if errors.As(err, &ae) && ae.RetryAfter > 0 {
		return ae.RetryAfter
	}
	if m := retryDelayRe.FindStringSubmatch(err.Error()); m != nil {
		if secs, convErr := strconv.Atoi(m[1]); convErr == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// HTTPStatus maps an AI call error onto the caller-facing status code.
func HTTPStatus(err error) int {
	switch {
	case IsTimeout(err):
		return http.StatusGatewayTimeout
	case IsQuota(err):
		return http.StatusTooManyRequests
	case Retryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage translates an AI call error into a short human-readable message.
// Internal details never leak to the client.
func UserMessage(err error) string {
	switch {
	case IsTimeout(err):
		return "The assistant took too long to respond. Please try again."
	case IsQuota(err):
		return "The assistant is receiving too many requests right now. Please try again in a minute."
	case Retryable(err):
		return "The assistant is temporarily overloaded. Please try again shortly."
	default:
		return "Something went wrong while talking to the assistant."
	}
}
