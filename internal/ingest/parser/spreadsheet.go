package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
	"github.com/xuri/excelize/v2"
)

//nolint:gochecknoglobals // file signatures
var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Spreadsheet parses the first sheet of an Excel workbook. The format is taken
// from the file signature, not from the extension, so an OOXML workbook saved
// as .xls still parses.
type Spreadsheet struct{}

func (Spreadsheet) Parse(ctx context.Context, r io.ReadSeeker) (entity.Table, error) {
	head := make([]byte, len(oleMagic))
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return entity.Table{}, err
	}
	head = head[:n]

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return entity.Table{}, err
	}

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return parseXLSX(ctx, r)
	case bytes.HasPrefix(head, oleMagic):
		return parseXLS(ctx, r)
	default:
		return entity.Table{}, ErrUnknownFormat
	}
}

func parseXLSX(ctx context.Context, r io.Reader) (entity.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return entity.Table{}, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return entity.Table{}, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return entity.Table{}, err
	}
	cells, err := newXLSXCells(f, sheet)
	if err != nil {
		return entity.Table{}, err
	}

	headerAt := -1
	width := 0
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if headerAt < 0 {
			headerAt = i
		}
		width = max(width, len(row))
	}
	if headerAt < 0 {
		return entity.Table{}, ErrNoColumns
	}

	header := make([]string, width)
	copy(header, rows[headerAt])

	columns := make([][]entity.Cell, width)
	count := 0
	for i := headerAt + 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		if count%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return entity.Table{}, err
			}
		}

		for c := 0; c < width; c++ {
			raw := ""
			if c < len(rows[i]) {
				raw = rows[i][c]
			}
			cell, err := cells.at(c+1, i+1, raw)
			if err != nil {
				return entity.Table{}, err
			}
			columns[c] = append(columns[c], cell)
		}
		count++
	}

	for c := range columns {
		if columns[c] == nil {
			columns[c] = make([]entity.Cell, count)
		}
		widenNumeric(columns[c])
	}

	return assemble(columnNames(header), columns, count), nil
}

// xlsxCells types raw cell values, remembering which styles carry a date
// number format.
type xlsxCells struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func newXLSXCells(f *excelize.File, sheet string) (*xlsxCells, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	return &xlsxCells{
		f:          f,
		sheet:      sheet,
		date1904:   props.Date1904 != nil && *props.Date1904,
		dateStyles: map[int]bool{},
	}, nil
}

func (x *xlsxCells) at(col, row int, raw string) (entity.Cell, error) {
	if raw == "" {
		return entity.Null(), nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return entity.Cell{}, err
	}
	typ, err := x.f.GetCellType(x.sheet, axis)
	if err != nil {
		return entity.Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return entity.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return entity.String(formatDate(t)), nil
			}
		}
		return entity.String(raw), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		isDate, err := x.dateStyled(axis)
		if err != nil {
			return entity.Cell{}, err
		}
		if isDate {
			if cell, ok := x.dateCell(raw); ok {
				return cell, nil
			}
		}
		return numberCell(raw), nil
	default:
		return entity.String(raw), nil
	}
}

func (x *xlsxCells) dateStyled(axis string) (bool, error) {
	id, err := x.f.GetCellStyle(x.sheet, axis)
	if err != nil {
		return false, err
	}
	if isDate, ok := x.dateStyles[id]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := x.f.GetStyle(id); err == nil {
		isDate = isDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	x.dateStyles[id] = isDate
	return isDate, nil
}

// dateCell converts an Excel serial date. Serials excelize cannot place on
// the calendar are left to the numeric path.
func (x *xlsxCells) dateCell(raw string) (entity.Cell, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return entity.Cell{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, x.date1904)
	if err != nil {
		return entity.Cell{}, false
	}
	if serial < 1 {
		// a time of day without a date
		return entity.String(t.Format(time.TimeOnly)), true
	}
	return entity.String(formatDate(t)), true
}

// isDateNumFmt reports whether a built-in number format renders a date or
// time. 27-36 and 50-58 are the East Asian date formats.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) || (id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode looks for date or time tokens in a custom format code,
// ignoring quoted literals, escapes and bracketed colour or locale tags.
func isDateFormatCode(code string) bool {
	section, _, _ := strings.Cut(code, ";")
	for i := 0; i < len(section); i++ {
		switch c := section[i]; c {
		case '"':
			if end := strings.IndexByte(section[i+1:], '"'); end >= 0 {
				i += end + 1
			}
		case '\\', '_', '*':
			i++
		case '[':
			end := strings.IndexByte(section[i:], ']')
			if end < 0 {
				return false
			}
			tag := strings.ToLower(section[i+1 : i+end])
			if tag != "" && strings.Trim(tag, "hms") == "" {
				return true
			}
			i += end
		default:
			switch c | 0x20 {
			case 'd', 'm', 'y', 'h', 's':
				return true
			}
		}
	}
	return false
}

// formatDate renders timestamps in the HTTP date layout, in UTC.
func formatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func parseXLS(ctx context.Context, r io.ReadSeeker) (table entity.Table, err error) {
	// the BIFF reader indexes record buffers without bounds checks
	defer func() {
		if rvr := recover(); rvr != nil {
			table, err = entity.Table{}, fmt.Errorf("corrupt xls workbook: %v", rvr)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return entity.Table{}, err
	}
	if wb.NumSheets() == 0 {
		return entity.Table{}, ErrNoSheets
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return entity.Table{}, ErrNoSheets
	}

	var grid [][]string
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		values := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			values[j] = xlsText(row.Col(j))
		}
		if isBlankRow(values) {
			continue
		}

		grid = append(grid, values)
		width = max(width, len(values))
	}
	if len(grid) == 0 {
		return entity.Table{}, ErrNoColumns
	}

	header := make([]string, width)
	copy(header, grid[0])

	return textTable(ctx, header, grid[1:])
}

// xlsText normalises the RFC 3339 text the BIFF reader produces for cells with
// a custom date format to the layout used for XLSX dates.
func xlsText(v string) string {
	if len(v) < len("2006-01-02T15:04:05Z") || v[4] != '-' || v[10] != 'T' {
		return v
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return v
	}
	return formatDate(t)
}
