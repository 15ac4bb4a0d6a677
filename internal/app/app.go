package app

import (
	"context"
	"net/http"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgconfig"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkglog"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgrouter"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgroutine"
	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkguid"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	requestID pkguid.StringID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server
	metrics    *prometheus.Registry

	// released in reverse registration order after the listener stops
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func (a *App) onStop(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.onStop("config", func(context.Context) error { return app.config.Close() })
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}
