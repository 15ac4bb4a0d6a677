package app

import (
	"log/slog"
	"os"

	"github.com/jonbrc/DataCubo-Back/internal/ingest"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.ingest.enabled") {
		dep := ingest.Dependency{
			Config:  a.config,
			Router:  a.router,
			Context: a.ctx,
		}
		if a.metrics != nil {
			dep.Metrics = a.metrics
		}

		stop, err := ingest.New(dep)
		if err != nil {
			slog.Error("failed to init module ingest", "error", err)
			os.Exit(1)
		}
		if stop != nil {
			a.onStop("ingest", stop)
		}
	}
}
