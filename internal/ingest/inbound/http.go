package inbound

import (
	"context"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/usecase"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgrouter"
)

type uc interface {
	Upload(ctx context.Context, in usecase.UploadInput) (usecase.UploadResult, error)
	Health(ctx context.Context) usecase.HealthResult
	Reject(ctx context.Context, err error) error
}

// RegisterHTTPEndpoint mounts the ingest routes. maxUploadBytes caps the
// upload request body; zero or less disables the cap.
func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, maxUploadBytes int64) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/health", end.Health)
	r.POST("/api/uploadArquivo", end.UploadArquivo, r.MaxBodySize(maxUploadBytes, uc.Reject))
}
