package riff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRiffError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewIOError("read failed", cause)
	require.Contains(t, err.Error(), "boom")
	require.True(t, errors.Is(err, cause))
}

func TestRiffError_WithDetailChains(t *testing.T) {
	err := NewUnknownColumnError("ghost").WithDetail("extra", 1)
	require.Equal(t, "ghost", err.Details["column"])
	require.Equal(t, 1, err.Details["extra"])
}

func TestIsErrorType(t *testing.T) {
	err := NewSchemaError(ErrCodeDuplicateName, "dup")
	require.True(t, IsErrorType(err, ErrorTypeSchema))
	require.False(t, IsErrorType(err, ErrorTypeIO))
	require.False(t, IsErrorType(errors.New("plain"), ErrorTypeSchema))
}

func TestNewStateViolationError(t *testing.T) {
	err := NewStateViolationError(SessionOpened, SessionPlanned)
	require.True(t, IsErrorType(err, ErrorTypeStateViolation))
	require.Equal(t, "opened", err.Details["state"])
	require.Equal(t, "planned", err.Details["required"])
}

func TestNewTypeMismatchError(t *testing.T) {
	err := NewTypeMismatchError("id", TypeInt, TypeString)
	require.True(t, IsErrorType(err, ErrorTypeTypeMismatch))
	require.Equal(t, "int", err.Details["want"])
	require.Equal(t, "string", err.Details["got"])
}
