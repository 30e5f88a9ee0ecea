package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlotRows_ValidArray(t *testing.T) {
	body := []byte(`[
		{"runningCourseId": "101", "courseSlotId": "S1", "courseSlotCd": "A", "slotPeriodCdDays": "Mon 09:00", "segName": "2"},
		{"runningCourseId": 102, "courseSlotId": 7, "courseSlotCd": null, "slotPeriodCdDays": "Wed 11:00", "segName": null}
	]`)
	assert.NoError(t, ValidateSlotRows(body))
}

func TestValidateSlotRows_EmptyArray(t *testing.T) {
	assert.NoError(t, ValidateSlotRows([]byte(`[]`)))
}

func TestValidateSlotRows_NotAnArray(t *testing.T) {
	err := ValidateSlotRows([]byte(`{"error": "session expired"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateSlotRows_ArrayOfNonObjects(t *testing.T) {
	err := ValidateSlotRows([]byte(`["101", "102"]`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateSlotRows_MalformedJSON(t *testing.T) {
	err := ValidateSlotRows([]byte(`<html><body>login</body></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateSlotRows_UnknownFieldsTolerated(t *testing.T) {
	body := []byte(`[{"runningCourseId": "101", "slotPeriodCdDays": "Mon", "venue": "CR-5"}]`)
	assert.NoError(t, ValidateSlotRows(body))
}
