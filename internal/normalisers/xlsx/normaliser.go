// Package xlsx extracts text from spreadsheet workbooks by serialising
// every sheet's rows as CSV beneath a sheet-name header.
package xlsx

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles .xlsx and .xls workbooks.
type Normaliser struct{}

// New creates a new XLSX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".xlsx", ".xls"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise renders every sheet as "\n=== Sheet: <name> ===\n" followed by
// its rows serialised as CSV.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := extractWorkbookText(raw.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:    raw.URI,
			Type:    "xlsx",
			Title:   normalisers.TitleFromName(raw.URI),
			Content: content,
		},
	}, nil
}

// extractWorkbookText opens the workbook and renders each sheet in file
// order.
func extractWorkbookText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		fmt.Fprintf(&b, "\n=== Sheet: %s ===\n", sheet)
		if err := writeCSVRows(&b, rows); err != nil {
			continue
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// writeCSVRows serialises rows as CSV directly into b.
func writeCSVRows(b *strings.Builder, rows [][]string) error {
	w := csv.NewWriter(b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
