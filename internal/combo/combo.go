// Package combo flattens the portal's comboHelpAjax JSON response into
// tabular rows. Each comboData entry carries a list of column objects
// with an alias and a value; the first entry's aliases define the column
// order.
package combo

import (
	"encoding/json"
	"fmt"
)

type response struct {
	ComboData        []entry `json:"comboData"`
	TotalRecordCount int     `json:"comboTotalRecordCount"`
}

type entry struct {
	List []column `json:"list"`
}

type column struct {
	ColumnAlias string `json:"columnAlias"`
	ColumnValue string `json:"columnValue"`
}

// Table is the flattened form of a combo response.
type Table struct {
	Headers []string
	Rows    []map[string]string
	Total   int
}

// Flatten parses a combo response body into a Table. An empty comboData
// list is an error: it usually means the export was requested with the
// wrong parameters.
func Flatten(data []byte) (*Table, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse combo response: %w", err)
	}
	if len(resp.ComboData) == 0 {
		return nil, fmt.Errorf("no combo data found in response")
	}

	var headers []string
	for _, col := range resp.ComboData[0].List {
		if col.ColumnAlias != "" {
			headers = append(headers, col.ColumnAlias)
		}
	}

	rows := make([]map[string]string, 0, len(resp.ComboData))
	for _, e := range resp.ComboData {
		row := make(map[string]string, len(e.List))
		for _, col := range e.List {
			if col.ColumnAlias != "" {
				row[col.ColumnAlias] = col.ColumnValue
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows, Total: resp.TotalRecordCount}, nil
}
