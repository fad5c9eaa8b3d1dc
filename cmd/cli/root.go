package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/wscoble/lambda-deployer/cmd/cli/router"
	"github.com/wscoble/lambda-deployer/internal/umwelt"
	"github.com/wscoble/lambda-deployer/internal/util"
	"github.com/wscoble/lambda-deployer/pkg/convention/config"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

func Invoke(ctx context.Context) {
	ctx, span := otel.Tracer("").Start(ctx, "lambda-deployer")
	defer span.End()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var root router.Root
	arg.MustParse(&root)

	util.SetLogLevel(root.Debug)

	projectDir, err := filepath.Abs(root.ProjectDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", root.ProjectDir).Msg("failed to resolve project directory")
	}

	if !util.DirExists(projectDir) {
		log.Fatal().Str("dir", projectDir).Msg("project directory does not exist")
	}

	// init only needs the disk layout, so it works without credentials.
	if root.Local() {
		cfg := config.FromHere(umwelt.Here{Project: umwelt.ThisProject{Dir: projectDir}})
		root.Handle(ctx, cfg, aws.Config{})
		return
	}

	retryLogger := util.RetryLogger{
		Log: &log.Logger,
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithLogger(&retryLogger),
		awsconfig.WithClientLogMode(aws.LogRetries))

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	stsc := sts.NewFromConfig(awsConfig)

	here, err := umwelt.FromDir(ctx, projectDir, awsConfig, stsc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to discover deployment environment")
	}

	root.Handle(ctx, config.FromHere(here), awsConfig)
}
