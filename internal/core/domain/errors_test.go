package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrSearchUnavailable", ErrSearchUnavailable},
		{"ErrRagWithoutCorpus", ErrRagWithoutCorpus},
		{"ErrNoRelevantResults", ErrNoRelevantResults},
		{"ErrUnknownDocument", ErrUnknownDocument},
		{"ErrUnknownProvider", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestErrInvalidInput(t *testing.T) {
	assert.Equal(t, "invalid input", ErrInvalidInput.Error())
	assert.True(t, errors.Is(ErrInvalidInput, ErrInvalidInput))
	assert.False(t, errors.Is(ErrInvalidInput, ErrNotFound))
}

func TestErrUnsupportedFormat(t *testing.T) {
	assert.Equal(t, "unsupported format", ErrUnsupportedFormat.Error())
	assert.True(t, errors.Is(ErrUnsupportedFormat, ErrUnsupportedFormat))
}

func TestErrLLMUnavailable(t *testing.T) {
	assert.Equal(t, "LLM service unavailable", ErrLLMUnavailable.Error())
	assert.True(t, errors.Is(ErrLLMUnavailable, ErrLLMUnavailable))
	assert.False(t, errors.Is(ErrLLMUnavailable, ErrEmbeddingUnavailable))
}

func TestErrEmbeddingUnavailable(t *testing.T) {
	assert.Equal(t, "embedding service unavailable", ErrEmbeddingUnavailable.Error())
	assert.True(t, errors.Is(ErrEmbeddingUnavailable, ErrEmbeddingUnavailable))
	assert.False(t, errors.Is(ErrEmbeddingUnavailable, ErrLLMUnavailable))
}

func TestErrSearchUnavailable(t *testing.T) {
	assert.Equal(t, "search unavailable", ErrSearchUnavailable.Error())
	assert.True(t, errors.Is(ErrSearchUnavailable, ErrSearchUnavailable))
}

func TestErrRagWithoutCorpus(t *testing.T) {
	assert.Equal(t, "rag requested without an indexed corpus", ErrRagWithoutCorpus.Error())
}

func TestErrNoRelevantResults(t *testing.T) {
	assert.Equal(t, "no relevant results", ErrNoRelevantResults.Error())
}

func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnsupportedFormat,
		ErrFetchFailed,
		ErrEmbeddingUnavailable,
		ErrLLMUnavailable,
		ErrSearchUnavailable,
		ErrRagWithoutCorpus,
		ErrNoRelevantResults,
		ErrUnknownDocument,
		ErrUnknownProvider,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

func TestErrors_WithWrapping(t *testing.T) {
	wrappedErr := errors.Join(ErrNotFound, errors.New("additional context"))

	assert.True(t, errors.Is(wrappedErr, ErrNotFound))
	assert.Contains(t, wrappedErr.Error(), "not found")
}

func TestErrors_ComparingWithIs(t *testing.T) {
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))

	wrapped := errors.Join(errors.New("context"), ErrInvalidInput)
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))

	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestErrors_ServiceErrors(t *testing.T) {
	serviceErrors := []error{
		ErrLLMUnavailable,
		ErrEmbeddingUnavailable,
		ErrSearchUnavailable,
	}

	for _, err := range serviceErrors {
		assert.Contains(t, err.Error(), "unavailable",
			"Service error %v should mention unavailable", err)
	}
}
