package usecase

import (
	"io"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
)

// Version is reported by the health check.
const Version = "1.0.0"

type UploadInput struct {
	// Filename is the name declared by the client, before sanitizing.
	Filename string
	Content  io.Reader
}

type UploadResult struct {
	StoredAs string
	Table    entity.Table
}

type HealthResult struct {
	Message string
	Version string
}
