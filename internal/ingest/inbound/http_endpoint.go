package inbound

import (
	"context"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/usecase"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
)

const fileField = "file"

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Health(ctx context.Context, _ *http.Request) (any, error) {
	result := h.uc.Health(ctx)

	return HealthResponse{
		Status:  statusSuccess,
		Message: result.Message,
		Version: result.Version,
	}, nil
}

func (h *HTTPEndpoint) UploadArquivo(ctx context.Context, r *http.Request) (any, error) {
	part, filename, err := extractFilePart(r)
	if err != nil {
		return nil, h.uc.Reject(ctx, err)
	}
	defer func() { _ = part.Close() }()

	result, err := h.uc.Upload(ctx, usecase.UploadInput{
		Filename: filename,
		Content:  part,
	})
	if err != nil {
		return nil, err
	}

	data := result.Table.Records
	if data == nil {
		data = []entity.Record{}
	}

	return UploadResponse{
		Status: statusSuccess,
		Rows:   len(data),
		Data:   data,
	}, nil
}

// extractFilePart streams the multipart body up to the first "file" part
// that declares a filename. The filename is returned as sent, so an empty
// one can be told apart from a missing part.
func extractFilePart(r *http.Request) (*multipart.Part, string, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", usecase.ErrMissingFile
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if usecase.IsTooLarge(err) {
				return nil, "", pkgerror.NewTooLarge(err)
			}
			// io.EOF means no file part; anything else is a malformed body.
			return nil, "", usecase.ErrMissingFile
		}

		if part.FormName() == fileField {
			if filename, ok := declaredFilename(part); ok {
				return part, filename, nil
			}
		}
		_ = part.Close()
	}
}

func declaredFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	filename, ok := params["filename"]
	return filename, ok
}
