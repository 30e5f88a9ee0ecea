package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	body := []byte(`{
		"comboTotalRecordCount": 2,
		"comboData": [
			{"list": [
				{"columnAlias": "rcid", "columnValue": "101"},
				{"columnAlias": "ccode", "columnValue": "CS101"},
				{"columnAlias": "", "columnValue": "ignored"}
			]},
			{"list": [
				{"columnAlias": "rcid", "columnValue": "102"},
				{"columnAlias": "ccode", "columnValue": "CS102"}
			]}
		]
	}`)

	table, err := Flatten(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"rcid", "ccode"}, table.Headers)
	assert.Equal(t, 2, table.Total)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "101", table.Rows[0]["rcid"])
	assert.Equal(t, "CS102", table.Rows[1]["ccode"])
}

func TestFlattenEmptyComboData(t *testing.T) {
	_, err := Flatten([]byte(`{"comboData": [], "comboTotalRecordCount": 0}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no combo data")
}

func TestFlattenMalformedJSON(t *testing.T) {
	_, err := Flatten([]byte(`{`))
	require.Error(t, err)
}
