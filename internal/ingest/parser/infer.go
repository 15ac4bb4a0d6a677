package parser

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
)

// contextCheckInterval is how many rows are converted between ctx checks.
const contextCheckInterval = 1024

// maxExactInt is the largest integer a float64 holds without rounding.
const maxExactInt = 1 << 53

//nolint:gochecknoglobals // lookup table
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

//nolint:gochecknoglobals // lookup table
var boolTokens = map[string]bool{
	"True": true, "TRUE": true, "true": true,
	"False": false, "FALSE": false, "false": false,
}

// field is a raw text value; present is false for cells beyond a short row.
type field struct {
	text    string
	present bool
}

func isMissing(f field) bool {
	if !f.present {
		return true
	}
	_, ok := missingTokens[f.text]
	return ok
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// inferColumn converts one column of text into cells. The whole column is
// typed at once: integers, then floats, then booleans, else strings kept
// verbatim. An integer column with missing values is widened to floats.
func inferColumn(values []field) []entity.Cell {
	cells := make([]entity.Cell, len(values))

	allInt, allFloat, allBool := true, true, true
	hasNull := false
	for _, v := range values {
		if isMissing(v) {
			hasNull = true
			continue
		}
		if allInt {
			_, allInt = parseInt(v.text)
		}
		if allFloat {
			_, allFloat = parseFloat(v.text)
		}
		if allBool {
			_, allBool = boolTokens[v.text]
		}
		if !allInt && !allFloat && !allBool {
			break
		}
	}

	for i, v := range values {
		if isMissing(v) {
			cells[i] = entity.Null()
			continue
		}
		switch {
		case allInt:
			n, _ := parseInt(v.text)
			cells[i] = entity.Int(n)
			if hasNull {
				cells[i] = cells[i].AsFloat()
			}
		case allFloat:
			f, _ := parseFloat(v.text)
			cells[i] = entity.Float(f)
		case allBool:
			cells[i] = entity.Bool(boolTokens[v.text])
		default:
			cells[i] = entity.String(v.text)
		}
	}

	return cells
}

// widenNumeric applies the same dtype rule to a column that was typed cell by
// cell: when every non-null cell is a number and the column mixes integers
// with floats or nulls, all numbers become floats.
func widenNumeric(cells []entity.Cell) {
	hasNull, hasFloat, hasInt := false, false, false
	for _, c := range cells {
		switch {
		case c.IsNull():
			hasNull = true
		case c.Kind() != entity.KindNumber:
			return
		case c.IsFloat():
			hasFloat = true
		default:
			hasInt = true
		}
	}

	if !hasInt || (!hasNull && !hasFloat) {
		return
	}
	for i := range cells {
		cells[i] = cells[i].AsFloat()
	}
}

// numberCell converts a spreadsheet numeric literal. Integral values that fit
// a float64 exactly become integers.
func numberCell(raw string) entity.Cell {
	f, ok := parseFloat(raw)
	if !ok {
		return entity.String(raw)
	}
	if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
		return entity.Int(int64(f))
	}
	return entity.Float(f)
}

// columnNames names blank headers "Unnamed: <index>" and suffixes repeated
// names with ".1", ".2" and so on, skipping suffixes already in use.
func columnNames(raw []string) []string {
	names := make([]string, len(raw))
	counts := make(map[string]int, len(raw))

	for i, name := range raw {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		cur := counts[name]
		for cur > 0 {
			counts[name] = cur + 1
			name = fmt.Sprintf("%s.%d", name, cur)
			cur = counts[name]
		}

		names[i] = name
		counts[name] = cur + 1
	}

	return names
}

// textTable builds a table from a header and text rows, inferring each
// column's type.
func textTable(ctx context.Context, header []string, rows [][]string) (entity.Table, error) {
	width := len(header)
	columns := make([][]field, width)
	for c := range columns {
		columns[c] = make([]field, len(rows))
	}

	for r, row := range rows {
		if r%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return entity.Table{}, err
			}
		}
		for c := 0; c < width && c < len(row); c++ {
			columns[c][r] = field{text: row[c], present: true}
		}
	}

	cells := make([][]entity.Cell, width)
	for c := range columns {
		cells[c] = inferColumn(columns[c])
	}

	return assemble(columnNames(header), cells, len(rows)), nil
}

// assemble transposes typed columns into records sharing one key slice.
func assemble(names []string, columns [][]entity.Cell, rows int) entity.Table {
	records := make([]entity.Record, rows)
	for r := range records {
		row := make([]entity.Cell, len(names))
		for c := range names {
			row[c] = columns[c][r]
		}
		records[r] = entity.NewRecord(names, row)
	}

	return entity.Table{Columns: names, Records: records}
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
