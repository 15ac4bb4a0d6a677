package app

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgconfig"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkglog"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgrouter"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgroutine"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkguid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
)

func defaults() map[string]any {
	return map[string]any{
		"upload_folder":          "uploads",
		"max_upload_bytes":       16 << 20,
		"allowed_extensions":     "csv,xlsx,xls",
		"host":                   "0.0.0.0",
		"port":                   "5000",
		"tz":                     "UTC",
		"log_level":              "info",
		"request_id":             pkguid.KindUUID,
		"metrics.enabled":        true,
		"storage.driver":         "disk",
		"storage.minio.use_ssl":  false,
		"modules.ingest.enabled": true,
	}
}

func loadConfig() (pkgconfig.Config, error) {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	return pkgconfig.NewViper(path,
		pkgconfig.WithDotEnv(".env"),
		pkgconfig.WithDefaults(defaults()),
	)
}

func (a *App) initConfig() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if lvl := cfg.GetString("log_level"); !pkglog.SetLevel(lvl) {
		slog.Warn("unknown log level, keeping info", "log_level", lvl)
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(10)

	id, err := pkguid.NewStringID(a.config.GetString("request_id"))
	if err != nil {
		slog.Error("failed to init id generator", "error", err)
		os.Exit(1)
	}
	a.requestID = id
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.requestID)

	if a.config.GetBool("metrics.enabled") {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if err := a.router.Instrument(reg); err != nil {
			slog.Error("failed to init metrics", "error", err)
			os.Exit(1)
		}
		a.router.Handle(http.MethodGet, "/metrics", pkgrouter.MetricsHandler(reg))
		a.metrics = reg
	}

	a.httpServer = &http.Server{
		Addr:              net.JoinHostPort(a.config.GetString("host"), a.config.GetString("port")),
		Handler:           newCORS().Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newCORS lets any origin call any method with any header.
func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}
