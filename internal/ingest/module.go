package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/inbound"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/parser"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/store"
	"github.com/jonbrc/DataCubo-Back/internal/ingest/usecase"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgconfig"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgrouter"
	"github.com/prometheus/client_golang/prometheus"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	Context context.Context
	// Metrics is optional; uploads are not measured when it is nil.
	Metrics prometheus.Registerer
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Config == nil || dep.Router == nil {
		return nil, errors.New("ingest: config and router are required")
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}

	storage, err := newStore(dep.Context, dep.Config)
	if err != nil {
		return nil, err
	}

	var metrics *usecase.Metrics
	if dep.Metrics != nil {
		if metrics, err = usecase.NewMetrics(dep.Metrics); err != nil {
			return nil, err
		}
	}

	uc := usecase.New(usecase.Dependency{
		Store:   storage,
		Parsers: parser.NewRegistry(),
		Metrics: metrics,
		Config: usecase.Config{
			AllowedExtensions: dep.Config.GetArray("allowed_extensions"),
		},
	})

	maxUpload := dep.Config.GetInt("max_upload_bytes")
	inbound.RegisterHTTPEndpoint(dep.Router, uc, maxUpload)

	slog.Info("ingest module ready", "max_upload_bytes", maxUpload)

	return nil, nil
}

func newStore(ctx context.Context, cfg pkgconfig.Config) (usecase.Store, error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.GetString("storage.driver"))); driver {
	case "", "disk":
		disk, err := store.NewDiskStore(cfg.GetString("upload_folder"))
		if err != nil {
			return nil, err
		}
		slog.Info("storing uploads on disk", "upload_folder", disk.Dir())
		return disk, nil

	case "minio":
		bucket := cfg.GetString("storage.minio.bucket")
		s, err := store.NewMinioStore(ctx, store.MinioConfig{
			Endpoint:  cfg.GetString("storage.minio.endpoint"),
			AccessKey: cfg.GetString("storage.minio.access_key"),
			SecretKey: cfg.GetString("storage.minio.secret_key"),
			Bucket:    bucket,
			Region:    cfg.GetString("storage.minio.region"),
			Prefix:    cfg.GetString("upload_folder"),
			UseSSL:    cfg.GetBool("storage.minio.use_ssl"),
		})
		if err != nil {
			return nil, err
		}
		slog.Info("storing uploads in minio", "bucket", bucket)
		return s, nil

	default:
		return nil, fmt.Errorf("ingest: unknown storage driver %q", driver)
	}
}
