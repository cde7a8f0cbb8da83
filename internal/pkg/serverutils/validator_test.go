package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type askPayload struct {
	Question string `validate:"required,min=1,max=2000"`
}

func TestValidateRequestValid(t *testing.T) {
	assert.NoError(t, ValidateRequest(askPayload{Question: "Quels sont les horaires ?"}))
}

func TestValidateRequestMissingField(t *testing.T) {
	err := ValidateRequest(askPayload{})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Question")
	assert.Contains(t, vErr.Fields["Question"], "required")
}

func TestValidateRequestTooLong(t *testing.T) {
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}

	err := ValidateRequest(askPayload{Question: string(long)})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields["Question"], "max")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"Question": "failed on the 'required' rule"}}
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "Question")
}
