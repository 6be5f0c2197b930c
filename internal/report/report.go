// Package report writes the image listing as CSV and prints a run summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/bagtoad/imglist/internal/catalog"
)

// WriteCSV writes header and rows to path, replacing any existing file.
func WriteCSV(path string, header []string, rows []catalog.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", path, cerr)
		}
	}()

	return Write(f, header, rows)
}

// Write encodes header and rows as CSV to w.
func Write(w io.Writer, header []string, rows []catalog.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("cannot write row %s: %w", r.DisplayName, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	return nil
}

// Print writes a summary of the written report to w.
func Print(w io.Writer, rows []catalog.Row, outFile string) {
	withURL := 0
	for _, r := range rows {
		if r.URL != "" {
			withURL++
		}
	}

	fmt.Fprintf(w, "Wrote %d rows to %s\n", len(rows), outFile)
	if withURL < len(rows) {
		fmt.Fprintf(w, "Rows without URL:    %d\n", len(rows)-withURL)
	}

	counts := catalog.CountByProject(rows)
	if len(counts) < 2 {
		return
	}
	fmt.Fprintf(w, "Projects:            %d\n", len(counts))
	for _, c := range counts {
		fmt.Fprintf(w, "  %s (%d images)\n", c.Project, c.Count)
	}
}
