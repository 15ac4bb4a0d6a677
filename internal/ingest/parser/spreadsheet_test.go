package parser

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, cells map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for axis, v := range cells {
		if err := f.SetCellValue("Sheet1", axis, v); err != nil {
			t.Fatalf("set %s: %v", axis, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestSpreadsheetParsesXLSX(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "name", "B1": "age", "C1": "active", "D1": "score",
		"A2": "Ana", "B2": 30, "C2": true, "D2": 1.5,
		"A3": "Leo", "B3": 25, "C3": false,
		"A5": "Bia", "B5": 41, "C5": true, "D5": 2,
	})

	table, err := Spreadsheet{}.Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := `[{"name":"Ana","age":30,"active":true,"score":1.5},` +
		`{"name":"Leo","age":25,"active":false,"score":null},` +
		`{"name":"Bia","age":41,"active":true,"score":2.0}]`
	if got := mustJSON(t, table.Records); got != want {
		t.Fatalf("unexpected records:\n got %s\nwant %s", got, want)
	}
}

func TestSpreadsheetDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	set := func(axis string, v any) {
		t.Helper()
		if err := f.SetCellValue("Sheet1", axis, v); err != nil {
			t.Fatalf("set %s: %v", axis, err)
		}
	}
	set("A1", "quando")
	set("B1", "hora")
	set("C1", "vencimento")
	set("D1", "valor")
	set("A2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	set("B2", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC))
	set("C2", 45292)
	set("D2", 1234.5)

	dayFirst := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dayFirst})
	if err != nil {
		t.Fatalf("date style: %v", err)
	}
	money := `"R$" #,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &money})
	if err != nil {
		t.Fatalf("money style: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "C2", "C2", dateStyle); err != nil {
		t.Fatalf("style C2: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "D2", "D2", moneyStyle); err != nil {
		t.Fatalf("style D2: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	table, err := Spreadsheet{}.Parse(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := `[{"quando":"Mon, 01 Jan 2024 00:00:00 GMT",` +
		`"hora":"Tue, 05 Mar 2024 14:30:00 GMT",` +
		`"vencimento":"Mon, 01 Jan 2024 00:00:00 GMT",` +
		`"valor":1234.5}]`
	if got := mustJSON(t, table.Records); got != want {
		t.Fatalf("unexpected records:\n got %s\nwant %s", got, want)
	}
}

func TestDateFormatCodes(t *testing.T) {
	cases := map[string]bool{
		"dd/mm/yyyy":            true,
		"[$-416]d \\de mmmm":    true,
		"[h]:mm":                true,
		"hh:mm AM/PM":           true,
		"#,##0.00":              false,
		`"R$" #,##0.00`:         false,
		"[Red]0.00;[Blue]-0.00": false,
		"0.00E+00":              false,
		`0 "dias"`:              false,
	}

	for code, want := range cases {
		if got := isDateFormatCode(code); got != want {
			t.Fatalf("isDateFormatCode(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestXLSTextNormalisesDates(t *testing.T) {
	if got := xlsText("2024-01-01T00:00:00Z"); got != "Mon, 01 Jan 2024 00:00:00 GMT" {
		t.Fatalf("unexpected date text: %q", got)
	}
	for _, v := range []string{"2024.01", "Ana", "12", "2024-01-01"} {
		if got := xlsText(v); got != v {
			t.Fatalf("xlsText(%q) = %q", v, got)
		}
	}
}

func TestSpreadsheetHeaderAfterBlankRows(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A3": "city", "B3": "",
		"A4": "Recife", "B4": "x",
	})

	table, err := Spreadsheet{}.Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got, want := mustJSON(t, table.Records), `[{"city":"Recife","Unnamed: 1":"x"}]`; got != want {
		t.Fatalf("unexpected records: %s", got)
	}
}

func TestSpreadsheetEmptySheet(t *testing.T) {
	data := buildWorkbook(t, nil)

	_, err := Spreadsheet{}.Parse(context.Background(), bytes.NewReader(data))
	if !errors.Is(err, ErrNoColumns) {
		t.Fatalf("expected ErrNoColumns, got %v", err)
	}
}

func TestSpreadsheetUnknownFormat(t *testing.T) {
	for _, content := range []string{"", "name,age\nAna,30\n", "PK"} {
		_, err := Spreadsheet{}.Parse(context.Background(), bytes.NewReader([]byte(content)))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("content %q: expected ErrUnknownFormat, got %v", content, err)
		}
	}
}

func TestSpreadsheetCorruptContainers(t *testing.T) {
	zipLike := append(append([]byte{}, zipMagic...), []byte("not really a zip archive")...)
	if _, err := (Spreadsheet{}).Parse(context.Background(), bytes.NewReader(zipLike)); err == nil {
		t.Fatalf("expected error for corrupt xlsx")
	}

	oleLike := append(append([]byte{}, oleMagic...), 0x00, 0x01, 0x02)
	if _, err := (Spreadsheet{}).Parse(context.Background(), bytes.NewReader(oleLike)); err == nil {
		t.Fatalf("expected error for corrupt xls")
	}
}

func TestSpreadsheetHonoursCancelledContext(t *testing.T) {
	data := buildWorkbook(t, map[string]any{"A1": "n", "A2": 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Spreadsheet{}.Parse(ctx, bytes.NewReader(data))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
