package verify

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_CalculateBackoff_None(t *testing.T) {
	assert.Equal(t, time.Second, CalculateBackoff(BackoffNone, 5, time.Second, 10*time.Second))
}

func Test_CalculateBackoff_Linear(t *testing.T) {
	assert.Equal(t, 3*time.Second, CalculateBackoff(BackoffLinear, 3, time.Second, 0))
}

func Test_CalculateBackoff_LinearCapsAtMax(t *testing.T) {
	assert.Equal(t, 5*time.Second, CalculateBackoff(BackoffLinear, 10, time.Second, 5*time.Second))
}

func Test_CalculateBackoff_Exponential(t *testing.T) {
	assert.Equal(t, 4*time.Second, CalculateBackoff(BackoffExponential, 2, time.Second, 0))
}

func Test_CalculateBackoff_ExponentialCapsAtMax(t *testing.T) {
	assert.Equal(t, 10*time.Second, CalculateBackoff(BackoffExponential, 10, time.Second, 10*time.Second))
}

func Test_IsTransientError_ContextErrorsNeverTransient(t *testing.T) {
	assert.False(t, isTransientError(context.DeadlineExceeded))
	assert.False(t, isTransientError(context.Canceled))
}

func Test_IsTransientError_ConnectionResetIsTransient(t *testing.T) {
	assert.True(t, isTransientError(syscall.ECONNRESET))
}

func Test_IsTransientError_NilIsNotTransient(t *testing.T) {
	assert.False(t, isTransientError(nil))
}

func Test_IsTransientError_ArbitraryErrorIsNotTransient(t *testing.T) {
	assert.False(t, isTransientError(errors.New("boom")))
}
