// Command parse_combo converts a saved comboHelpAjax JSON response into a
// CSV file. The input is the raw body of the portal's course list export;
// the output gets one column per columnAlias in the order of the first
// entry.
//
// Usage:
//
//	go run cmd/tools/parse_combo/main.go input.json output.csv
package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/arjunmnair/aims-timetable/internal/combo"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: parse_combo input.json output.csv")
		os.Exit(1)
	}
	inPath, outPath := os.Args[1], os.Args[2]

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read %s: %v\n", inPath, err)
		os.Exit(1)
	}

	table, err := combo.Flatten(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create %s: %v\n", outPath, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows (%d total on server) to %s\n", len(table.Rows), table.Total, outPath)
}
