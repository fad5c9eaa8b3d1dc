package main

import (
	"context"

	"github.com/wscoble/lambda-deployer/cmd/cli"
	"github.com/wscoble/lambda-deployer/internal/tracing"

	"github.com/rs/zerolog"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := context.Background()

	_, shutdown := tracing.InitOtel(ctx)
	defer shutdown()

	cli.Invoke(ctx)
}
