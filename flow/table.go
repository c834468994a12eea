package flow

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/knieriem/odf/ods"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SupportedExtensions lists the file formats ReadTable accepts, in the order
// shown to the user.
var SupportedExtensions = []string{".csv", ".ods", ".xls", ".xlsx"}

// csvDelimiters are tried in order when sniffing a delimited text file.
var csvDelimiters = []rune{',', ';', ' ', '|'}

// Row cap when draining legacy .xls workbooks.
const maxSheetRows = 1 << 20

// ReadTable reads a spreadsheet or delimited text file and normalizes it
// into a Relation. It locates the source, destination and optional amount
// columns by fuzzy header matching, discards everything else and coerces
// values: endpoints become trimmed strings, amounts become decimals with
// unparseable cells mapped to absent.
//
// Rows with blank endpoints are kept; Aggregate filters them. The normalizer
// stays purely structural.
func ReadTable(path string) (Relation, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv":
		rows, err = readDelimited(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	case ".ods":
		rows, err = readODS(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, ", "))
	}
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows)
}

// normalizeRows resolves column roles against the header row and projects
// the raw table down to the canonical three fields.
func normalizeRows(rows [][]string) (Relation, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", ErrMissingColumns)
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	cands := getColumnCandidates()
	srcCol := findColumn(header, cands.Source)
	dstCol := findColumn(header, cands.Destination)
	if srcCol < 0 || dstCol < 0 {
		return nil, fmt.Errorf("%w: make sure your sheet has those headers (got %s)",
			ErrMissingColumns, strings.Join(header, ", "))
	}
	amtCol := findColumn(header, cands.Amount)

	rel := make(Relation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t := Transfer{
			Source:      cellAt(row, srcCol),
			Destination: cellAt(row, dstCol),
		}
		if amtCol >= 0 {
			t.Amount = parseAmount(cellAt(row, amtCol))
		}
		rel = append(rel, t)
	}
	return rel, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

// parseAmount coerces a cell to a decimal value. Amount is optional data, so
// unparseable cells map to nil rather than an error.
func parseAmount(cell string) *decimal.Decimal {
	if cell == "" {
		return nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return nil
	}
	return &d
}

// readDelimited sniffs the delimiter of a text file: the first candidate
// whose parse yields at least two header columns wins. When none qualifies
// the file is re-read with the default comma and whatever comes out is
// accepted, letting column discovery reject it downstream.
func readDelimited(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	for _, delim := range csvDelimiters {
		rows, err := parseDelimited(data, delim)
		if err != nil {
			continue
		}
		if len(rows) > 0 && len(rows[0]) >= 2 {
			return rows, nil
		}
	}
	rows, err := parseDelimited(data, ',')
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func parseDelimited(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", filepath.Base(path))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readXLS(path string) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return wb.ReadAllCells(maxSheetRows), nil
}

func readODS(path string) ([][]string, error) {
	f, err := ods.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	var doc ods.Doc
	if err := f.ParseContent(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(doc.Table) == 0 {
		return nil, fmt.Errorf("no tables in %s", filepath.Base(path))
	}
	return doc.Table[0].Strings(), nil
}
