package router

import (
	"context"
	"os"

	"github.com/wscoble/lambda-deployer/cmd/cli/method"
	"github.com/wscoble/lambda-deployer/cmd/cli/param"
	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	"github.com/wscoble/lambda-deployer/pkg/sdk"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

type Root struct {
	Init   *param.Init   `arg:"subcommand:init" help:"Create function.json in the project directory"`
	Deploy *param.Deploy `arg:"subcommand:deploy" help:"Package the project and create or update its function. With Publish set, updates also publish a new version"`
	Config *param.Config `arg:"subcommand:config" help:"Print configuration"`
	param.GlobalOpts
}

func (Root) Version() string {
	return config.SelfPackage + " " + version
}

// Local reports whether the command runs without talking to AWS.
func (c Root) Local() bool {
	return c.Init != nil || (c.Deploy == nil && c.Config == nil)
}

func (c Root) Handle(ctx context.Context, cfg config.Config, awsConfig aws.Config) {
	switch {
	case c.Init != nil:
		method.InitFunction(ctx, cfg, c.Init)

	case c.Deploy != nil:
		api, err := sdk.Init(ctx, awsConfig, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SDK")
		}

		method.DeployFunction(ctx, api, c.Deploy)

	case c.Config != nil:
		method.PrintConfig(ctx, cfg, c.Config)

	default:
		arg.MustParse(&c).WriteHelp(os.Stdout)
	}
}
