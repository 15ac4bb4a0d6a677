package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/parser"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
)

type testStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newTestStore() *testStore {
	return &testStore{files: make(map[string][]byte)}
}

func (s *testStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return "mem/" + name, nil
}

func (s *testStore) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, pkgerror.ErrNotFound
	}
	return nopCloser{bytes.NewReader(data)}, nil
}

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }

type recordingParser struct {
	called bool
}

func (p *recordingParser) Parse(ctx context.Context, r io.ReadSeeker) (entity.Table, error) {
	p.called = true
	return entity.Table{}, errors.New("boom")
}

func newUsecase(store Store) *Usecase {
	return New(Dependency{Store: store})
}

func TestUploadParsesCSV(t *testing.T) {
	store := newTestStore()
	uc := newUsecase(store)

	result, err := uc.Upload(context.Background(), UploadInput{
		Filename: "Pessoas.CSV",
		Content:  strings.NewReader("name,age\nAna,30\nLeo,25"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if result.StoredAs != "Pessoas.CSV" {
		t.Fatalf("unexpected stored name: %s", result.StoredAs)
	}
	if len(result.Table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Table.Records))
	}
	if _, ok := store.files["Pessoas.CSV"]; !ok {
		t.Fatalf("expected file to be stored")
	}
}

func TestUploadValidation(t *testing.T) {
	cases := []struct {
		name     string
		input    UploadInput
		expected error
	}{
		{name: "no content", input: UploadInput{Filename: "a.csv"}, expected: ErrMissingFile},
		{name: "empty name", input: UploadInput{Content: strings.NewReader("x")}, expected: ErrInvalidFilename},
		{name: "no dot", input: UploadInput{Filename: "csv", Content: strings.NewReader("x")}, expected: ErrUnsupportedType},
		{name: "bad extension", input: UploadInput{Filename: "a.txt", Content: strings.NewReader("x")}, expected: ErrUnsupportedType},
		{name: "trailing dot", input: UploadInput{Filename: "a.", Content: strings.NewReader("x")}, expected: ErrUnsupportedType},
		{name: "double extension", input: UploadInput{Filename: "a.csv.exe", Content: strings.NewReader("x")}, expected: ErrUnsupportedType},
	}

	for _, tc := range cases {
		store := newTestStore()
		_, err := newUsecase(store).Upload(context.Background(), tc.input)
		if !errors.Is(err, tc.expected) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, err)
		}
		if len(store.files) != 0 {
			t.Fatalf("%s: nothing should be stored", tc.name)
		}

		var perr *pkgerror.Error
		if !errors.As(err, &perr) || perr.StatusCode() != http.StatusBadRequest {
			t.Fatalf("%s: expected a 400 error, got %v", tc.name, err)
		}
	}
}

func TestUploadKeepsFileWhenParsingFails(t *testing.T) {
	store := newTestStore()
	uc := newUsecase(store)

	_, err := uc.Upload(context.Background(), UploadInput{
		Filename: "broken.xlsx",
		Content:  strings.NewReader("definitely not a workbook"),
	})
	if err == nil {
		t.Fatalf("expected parse failure")
	}

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected structured error, got %T", err)
	}
	if perr.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", perr.StatusCode())
	}
	if !strings.HasPrefix(perr.Msg(), "Erro ao processar arquivo: ") {
		t.Fatalf("unexpected message: %q", perr.Msg())
	}
	if !errors.Is(err, parser.ErrUnknownFormat) {
		t.Fatalf("expected wrapped parser error, got %v", err)
	}
	if _, ok := store.files["broken.xlsx"]; !ok {
		t.Fatalf("expected file to be kept after parse failure")
	}
}

func TestUploadSanitizesName(t *testing.T) {
	cases := map[string]string{
		"../../etc/dados.csv": "etc_dados.csv",
		"planilha final.xlsx": "planilha_final.xlsx",
		"汉字.csv":              "csv",
		"...csv":              "csv",
		"relatório 2024.XLS":  "relatorio_2024.XLS",
		"中文":                  fallbackName,
	}

	for declared, want := range cases {
		if got := storedName(declared); got != want {
			t.Fatalf("storedName(%q) = %q, want %q", declared, got, want)
		}
	}
}

func TestUploadDispatchesBySanitizedName(t *testing.T) {
	store := newTestStore()

	_, err := newUsecase(store).Upload(context.Background(), UploadInput{
		Filename: "中文.csv",
		Content:  strings.NewReader("a,b\n1,2\n"),
	})

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if !errors.Is(err, parser.ErrUnknownFormat) {
		t.Fatalf("expected the spreadsheet parser to reject csv text, got %v", err)
	}
	if _, ok := store.files["csv"]; !ok {
		t.Fatalf("expected file stored as %q, have %v", "csv", store.files)
	}
}

func TestUploadDispatchesByExtension(t *testing.T) {
	store := newTestStore()
	reg := parser.NewRegistry()
	fake := &recordingParser{}
	reg.Register("xls", fake)

	uc := New(Dependency{Store: store, Parsers: reg})
	if _, err := uc.Upload(context.Background(), UploadInput{Filename: "a.XLS", Content: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error from fake parser")
	}
	if !fake.called {
		t.Fatalf("expected xls parser to be used")
	}
}

func TestUploadSaveFailures(t *testing.T) {
	store := newTestStore()
	store.saveErr = &http.MaxBytesError{Limit: 10}

	_, err := newUsecase(store).Upload(context.Background(), UploadInput{Filename: "a.csv", Content: strings.NewReader("x")})
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.StatusCode() != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}

	store.saveErr = errors.New("disk full")
	_, err = newUsecase(store).Upload(context.Background(), UploadInput{Filename: "a.csv", Content: strings.NewReader("x")})
	if !errors.As(err, &perr) || perr.Msg() != "Erro ao salvar arquivo: disk full" {
		t.Fatalf("expected save failure, got %v", err)
	}
}

func TestUploadCustomExtensions(t *testing.T) {
	uc := New(Dependency{
		Store:  newTestStore(),
		Config: Config{AllowedExtensions: []string{" .CSV ", ""}},
	})

	if _, err := uc.Upload(context.Background(), UploadInput{Filename: "a.xlsx", Content: strings.NewReader("x")}); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected xlsx to be rejected, got %v", err)
	}
	if _, err := uc.Upload(context.Background(), UploadInput{Filename: "a.csv", Content: strings.NewReader("a\n1\n")}); err != nil {
		t.Fatalf("expected csv to be accepted, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	got := newUsecase(newTestStore()).Health(context.Background())
	if got.Message != "API está funcionando!" || got.Version != "1.0.0" {
		t.Fatalf("unexpected health: %+v", got)
	}
}
