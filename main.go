package main

import (
	"context"
	"time"

	"github.com/jonbrc/DataCubo-Back/internal/app"
)

func main() {
	application := app.New()
	<-application.Start() // blocks until a termination signal or a listener failure

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application.Stop(ctx)
}
