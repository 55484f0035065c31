package errors

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New(CodeEventNotFound, "event not found", CategoryUser)
	assert.Equal(t, "[EVENT_NOT_FOUND] event not found", err.Error())

	wrapped := Wrap(stderrors.New("no rows"), CodeStoreUnavailable, "query failed", CategorySystem)
	assert.Equal(t, "[STORE_UNAVAILABLE] query failed: no rows", wrapped.Error())
	assert.Equal(t, "no rows", wrapped.Unwrap().Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeStoreUnavailable, "ignored", CategorySystem))
}

func TestBuilder(t *testing.T) {
	inner := stderrors.New("dial tcp: timeout")
	err := NewBuilder(CodeNetworkUnavailable, "network request failed").
		Temporary().
		Wrap(inner).
		WithSuggestion("Check your connection").
		WithRetryAfter(2 * time.Second).
		Build()

	assert.Equal(t, CategoryTemporary, err.Category)
	assert.True(t, err.Retryable)
	assert.Equal(t, inner, err.Inner)
	assert.Equal(t, []string{"Check your connection"}, err.Suggestions)
	assert.Equal(t, 2*time.Second, err.RetryAfter)
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, CategoryUser, GetCategory(New(CodeConfigInvalid, "bad config", CategoryUser)))
	assert.Equal(t, CategoryRateLimit, GetCategory(RateLimit(CodeModelRateLimit, "slow down", time.Second)))

	// Unknown errors default to temporary.
	assert.Equal(t, CategoryTemporary, GetCategory(stderrors.New("mystery")))
	assert.Equal(t, CategoryTemporary, GetCategory(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Temporary(CodeModelUnavailable, "busy")))
	assert.False(t, IsRetryable(New(CodeValidationFailed, "bad input", CategoryUser)))
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(stderrors.New("mystery")))
}

func TestGetRetryAfter(t *testing.T) {
	err := RateLimit(CodeModelRateLimit, "slow down", 7*time.Second)
	assert.Equal(t, 7*time.Second, GetRetryAfter(err))
	assert.Equal(t, time.Duration(0), GetRetryAfter(stderrors.New("plain")))
}

func TestFormatUserMessage(t *testing.T) {
	err := NewBuilder(CodeModelUnavailable, "Groq API key not configured").
		User().
		WithSuggestion("Set GROQ_API_KEY").
		Build()

	msg := FormatUserMessage(err)
	assert.Contains(t, msg, "Groq API key not configured")
	assert.Contains(t, msg, "Set GROQ_API_KEY")

	assert.Equal(t, "plain", FormatUserMessage(stderrors.New("plain")))
	assert.Equal(t, "", FormatUserMessage(nil))
}

func TestCategoryString(t *testing.T) {
	require.Equal(t, "temporary", CategoryTemporary.String())
	require.Equal(t, "rate_limit", CategoryRateLimit.String())
	require.Equal(t, "unknown", Category(99).String())
}
