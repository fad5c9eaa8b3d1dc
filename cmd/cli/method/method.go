package method

import (
	"context"
	"errors"
	"fmt"

	"github.com/wscoble/lambda-deployer/cmd/cli/param"
	"github.com/wscoble/lambda-deployer/cmd/cli/view"
	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	"github.com/wscoble/lambda-deployer/pkg/convention/definition"
	"github.com/wscoble/lambda-deployer/pkg/sdk"

	"github.com/rs/zerolog/log"
)

func InitFunction(ctx context.Context, cfg config.Config, p *param.Init) {
	err := definition.Scaffold(cfg.Project.DefinitionFile)
	if errors.Is(err, definition.ErrExists) {
		fmt.Println("function.json already exists!")
		return
	}

	if err != nil {
		log.Fatal().Err(err).Msg("failed to scaffold function.json")
	}

	fmt.Println("function.json created")
}

func DeployFunction(ctx context.Context, api sdk.API, p *param.Deploy) {
	path := api.Config.DefinitionPath(p.Definition())

	fmt.Println("Reading configuration at " + path + "...")
	def, err := definition.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to read function configuration")
	}

	fmt.Println("Validating config...")
	for _, key := range def.Unknown() {
		log.Warn().Str("key", key).Msg("ignoring unrecognized configuration key")
	}
	def = def.WithAccount(api.Config.Account.Id)
	fmt.Println("Config valid!")

	if api.Config.Git.Dirty {
		log.Warn().Str("sha", api.Config.Git.Sha).Msg("working tree has uncommitted changes, tagging with last commit")
	}

	fmt.Println("Creating deployment package...")
	artifactPath, err := api.Artifact.Build(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create deployment package")
	}
	fmt.Println("Deployment package created!")

	progress := func(message string) {
		fmt.Println(message)
	}

	deployed, err := api.Deployment.WithProgress(progress).Deploy(ctx, def, artifactPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to deploy function")
	}

	if deployed.Arn == nil {
		log.Fatal().Str("function", def.FunctionName).Msg("function was not created")
	}

	fmt.Println(view.Summary(deployed, artifactPath, api.Config.Git))
}

func PrintConfig(ctx context.Context, cfg config.Config, p *param.Config) {
	cJson, err := cfg.Json()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to print configuration")
	}

	fmt.Println(cJson)
}
