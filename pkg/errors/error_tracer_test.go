package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTracer_Wrap(t *testing.T) {
	cause := fmt.Errorf("read failed")

	traced := NewTracer("snapshot_load").Wrap(cause)
	assert.Equal(t, "snapshot_load", traced.Error())
	assert.ErrorIs(t, traced, cause)
	require.NotNil(t, traced.StackTrace())

	t.Run("existing stack trace is kept", func(t *testing.T) {
		withStack := pkgerrors.New("already traced")
		traced := NewTracer("snapshot_store").Wrap(withStack)
		assert.Same(t, withStack, traced.Unwrap())
	})
}

func TestTracerFromError(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	traced := TracerFromError(cause)
	assert.Equal(t, "connection refused", traced.Error())
	assert.ErrorIs(t, traced, cause)
	assert.NotNil(t, traced.StackTrace())
}
