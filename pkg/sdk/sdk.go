package sdk

import (
	"context"

	// config
	"github.com/wscoble/lambda-deployer/pkg/convention/config"

	// services
	"github.com/wscoble/lambda-deployer/pkg/service/function"
	"github.com/wscoble/lambda-deployer/pkg/service/python"

	// conventions
	"github.com/wscoble/lambda-deployer/pkg/convention/artifact"
	"github.com/wscoble/lambda-deployer/pkg/convention/deployment"

	// clients
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

type Clients struct {
	LambdaClient *lambda.Client
}

type Services struct {
	Function function.Service
	Python   python.Service
}

type Conventions struct {
	Artifact   artifact.Convention
	Deployment deployment.Convention
}

type API struct {
	Conventions
	Config config.Config
}

func Init(ctx context.Context, awsConfig aws.Config, config config.Config) (API, error) {
	clients, err := InitClients(ctx, awsConfig)
	if err != nil {
		return API{}, err
	}

	services, err := InitServices(ctx, clients)
	if err != nil {
		return API{}, err
	}

	conventions, err := InitConventions(ctx, config, services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Config:      config,
	}, nil
}

func InitConventions(ctx context.Context, config config.Config, services Services) (Conventions, error) {
	return Conventions{
		Artifact:   artifact.FromServices(config, services.Python),
		Deployment: deployment.FromServices(config, services.Function),
	}, nil
}

func InitServices(ctx context.Context, clients Clients) (Services, error) {
	python, err := python.FromPath(ctx)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Function: function.FromClients(clients.LambdaClient),
		Python:   python,
	}, nil
}

func InitClients(ctx context.Context, awsConfig aws.Config) (Clients, error) {
	return Clients{
		LambdaClient: lambda.NewFromConfig(awsConfig),
	}, nil
}
