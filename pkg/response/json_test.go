package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/validate"
)

func TestValidationError_CarriesStableCode(t *testing.T) {
	err := validate.NonNegativeAmount("amount", -1)
	require.Error(t, err)
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)

	rec := httptest.NewRecorder()
	ValidationError(rec, verr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(validate.CodeNegativeValue), body.Error.Code)
	assert.Equal(t, verr.Error(), body.Error.Message)
}
