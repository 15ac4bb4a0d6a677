package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
)

//nolint:gochecknoglobals // constant byte sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV parses comma separated UTF-8 text whose first non-blank line is the
// header.
type CSV struct{}

func (CSV) Parse(ctx context.Context, r io.ReadSeeker) (entity.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return entity.Table{}, err
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if err := checkUTF8(data); err != nil {
		return entity.Table{}, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.Table{}, ErrNoColumns
	}
	if err != nil {
		return entity.Table{}, err
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.Table{}, err
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return entity.Table{}, fmt.Errorf("Error tokenizing data. Expected %d fields in line %d, saw %d", len(header), line, len(record)) //nolint:revive,stylecheck // client message
		}

		rows = append(rows, record)
		if len(rows)%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return entity.Table{}, err
			}
		}
	}

	return textTable(ctx, header, rows)
}

func checkUTF8(data []byte) error {
	if utf8.Valid(data) {
		return nil
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("'utf-8' codec can't decode byte 0x%02x in position %d: invalid start byte", data[i], i)
		}
		i += size
	}
	return nil
}
