package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeInvalidFitInput, "energies must be monotonic")
	assert.Equal(t, "[CONCEPT_001] energies must be monotonic", err.Error())

	withDetail := err.WithDetail("E=[-15.0, -14.5, -16.0]")
	assert.Equal(t, "[CONCEPT_001] energies must be monotonic: E=[-15.0, -14.5, -16.0]", withDetail.Error())
	// WithDetail must not mutate the original.
	assert.Empty(t, err.Detail)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeDatabaseError, "query failed")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := New(ErrCodeInversionFailed, "no real root")
	outer := Wrap(inner, CodeUnknown, "conversion failed")
	assert.Equal(t, ErrCodeInversionFailed, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeEvaluationDomain, "hardness vanishes")
	wrapped := fmt.Errorf("computing softness: %w", inner)
	assert.True(t, IsCode(wrapped, ErrCodeEvaluationDomain))
	assert.False(t, IsCode(wrapped, ErrCodeInversionFailed))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(New(ErrCodeInvalidFitInput, "bad triple")))
	assert.True(t, IsValidation(New(ErrCodeInvalidArgument, "negative N")))
	assert.True(t, IsValidation(New(ErrCodeValidation, "bad request body")))
	assert.False(t, IsValidation(New(ErrCodeInternal, "boom")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeNotFound, GetCode(NotFound("descriptor set missing")))
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrCodeInvalidFitInput.HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, ErrCodeInversionFailed.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrCodeNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE").HTTPStatus())
}

func TestFactories(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("gone")))
	assert.Equal(t, ErrCodeInternal, Internal("boom").Code)
	assert.Equal(t, ErrCodeConflict, Conflict("already exists").Code)
	assert.NotEmpty(t, Internal("boom").Stack)
}
