package inbound

import "github.com/jonbrc/DataCubo-Back/internal/ingest/entity"

const statusSuccess = "success"

type UploadResponse struct {
	Status string          `json:"status"`
	Rows   int             `json:"rows"`
	Data   []entity.Record `json:"data"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
