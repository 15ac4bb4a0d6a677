package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/parser"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgfilename"
)

type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

type Parsers interface {
	For(ext string) parser.Parser
}

// Config holds the upload rules. Extensions are compared lower-cased.
type Config struct {
	AllowedExtensions []string
}

// DefaultAllowedExtensions is used when Config.AllowedExtensions is empty.
func DefaultAllowedExtensions() []string {
	return []string{"csv", "xlsx", "xls"}
}

type Dependency struct {
	Store   Store
	Parsers Parsers
	Metrics *Metrics
	Config  Config
}

type Usecase struct {
	store   Store
	parsers Parsers
	metrics *Metrics
	allowed []string
}

func New(dep Dependency) *Usecase {
	parsers := dep.Parsers
	if parsers == nil {
		parsers = parser.NewRegistry()
	}

	allowed := make([]string, 0, len(dep.Config.AllowedExtensions))
	for _, ext := range dep.Config.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed = append(allowed, ext)
		}
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedExtensions()
	}

	return &Usecase{
		store:   dep.Store,
		parsers: parsers,
		metrics: dep.Metrics,
		allowed: allowed,
	}
}

func (u *Usecase) Health(context.Context) HealthResult {
	return HealthResult{
		Message: "API está funcionando!",
		Version: Version,
	}
}

// Upload validates the declared file name, stores the content under its
// sanitized name and parses the stored copy. The stored file is kept whether
// or not parsing succeeds.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (result UploadResult, err error) {
	var ext string
	defer func() { u.metrics.observe(ext, len(result.Table.Records), err) }()

	if u.store == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if in.Content == nil {
		return UploadResult{}, ErrMissingFile
	}
	if in.Filename == "" {
		return UploadResult{}, ErrInvalidFilename
	}

	declared, ok := pkgfilename.Extension(in.Filename)
	if !ok || !slices.Contains(u.allowed, declared) {
		return UploadResult{}, ErrUnsupportedType
	}
	ext = declared

	name := storedName(in.Filename)

	path, err := u.store.Save(ctx, name, in.Content)
	if err != nil {
		return UploadResult{}, saveFailure(err)
	}
	slog.InfoContext(ctx, "upload stored", "filename", in.Filename, "path", path)

	table, err := u.parse(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "upload parse failed", "path", path, "error", err)
		return UploadResult{}, parseFailure(err)
	}
	slog.InfoContext(ctx, "upload parsed", "path", path, "rows", len(table.Records), "columns", len(table.Columns))

	return UploadResult{StoredAs: name, Table: table}, nil
}

// Reject records an upload refused before its content reached Upload, such
// as a body without a file part or one over the size limit, and returns err.
func (u *Usecase) Reject(ctx context.Context, err error) error {
	slog.InfoContext(ctx, "upload rejected", "error", err)
	u.metrics.observe("", 0, err)
	return err
}

// parse picks the parser from the stored name, so a name whose suffix was
// lost to sanitizing ("中文.csv" is stored as "csv") is read as a spreadsheet.
func (u *Usecase) parse(ctx context.Context, name string) (entity.Table, error) {
	f, err := u.store.Open(ctx, name)
	if err != nil {
		return entity.Table{}, err
	}
	defer func() { _ = f.Close() }()

	ext, _ := pkgfilename.Extension(name)
	return u.parsers.For(ext).Parse(ctx, f)
}

// fallbackName is used when sanitizing leaves nothing of the declared name.
const fallbackName = "upload"

func storedName(declared string) string {
	if name := pkgfilename.Secure(declared); name != "" {
		return name
	}
	return fallbackName
}
