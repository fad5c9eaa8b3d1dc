package deployment

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	"github.com/wscoble/lambda-deployer/pkg/convention/definition"
	"github.com/wscoble/lambda-deployer/pkg/service/function"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// UpdateTimeout bounds the wait between the configuration and code updates.
const UpdateTimeout = 5 * time.Minute

type FunctionService interface {
	Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error)
	Create(ctx context.Context, input *lambda.CreateFunctionInput) (*lambda.CreateFunctionOutput, error)
	UpdateConfiguration(ctx context.Context, input *lambda.UpdateFunctionConfigurationInput) (*lambda.UpdateFunctionConfigurationOutput, error)
	UpdateCode(ctx context.Context, input *lambda.UpdateFunctionCodeInput) (*lambda.UpdateFunctionCodeOutput, error)
	WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error
	Tag(ctx context.Context, arn string, tags map[string]string) (*lambda.TagResourceOutput, error)
}

// Deployment describes the function version a deploy left behind. Arn is nil
// when the provider refused to create the function.
type Deployment struct {
	Name       string
	Arn        *string
	CodeSha256 *string
	Version    *string
	Created    bool
}

type Services struct {
	Function FunctionService
}

// Progress receives a line for each step of a deploy as it happens.
type Progress func(message string)

type Convention struct {
	Config   config.Config
	Service  Services
	Progress Progress
}

func FromServices(c config.Config, f FunctionService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Function: f,
		},
	}
}

// WithProgress returns a copy of the convention that reports deploy steps to p.
func (c Convention) WithProgress(p Progress) Convention {
	c.Progress = p
	return c
}

func (c Convention) report(message string) {
	if c.Progress != nil {
		c.Progress(message)
	}
}

// Find returns the named function, or nil when the provider does not know it.
func (c Convention) Find(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.Find")
	defer span.End()

	existing, err := c.Service.Function.Inspect(ctx, name)
	if err != nil {
		if function.IsNotFound(err) {
			return nil, nil
		}

		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return existing, nil
}

func (c Convention) Deploy(ctx context.Context, def definition.Definition, artifactPath string) (Deployment, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.Deploy")
	defer span.End()

	span.SetAttributes(attribute.String("function.name", def.FunctionName))

	c.report("Checking for existing lambda function '" + def.FunctionName + "'...")
	existing, err := c.Find(ctx, def.FunctionName)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, err
	}

	if existing == nil {
		c.report("No existing function found, deploying new function...")
		return c.DeployNew(ctx, def, artifactPath)
	}

	c.report("Existing function found!")
	c.report("Deploying...")
	return c.DeployExisting(ctx, def, artifactPath, existing)
}

// DeployNew creates the function from the full definition. A provider
// rejection is logged and reported as a deployment without an ARN.
func (c Convention) DeployNew(ctx context.Context, def definition.Definition, artifactPath string) (Deployment, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.DeployNew")
	defer span.End()

	code, err := os.ReadFile(artifactPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to read deployment package: %w", err)
	}

	input := def.CreateInput(code)
	input.Tags = c.tags(def.Tags)

	created, err := c.Service.Function.Create(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).Msg("There was a problem:")
		return Deployment{Name: def.FunctionName}, nil
	}

	return Deployment{
		Name:       def.FunctionName,
		Arn:        created.FunctionArn,
		CodeSha256: created.CodeSha256,
		Version:    created.Version,
		Created:    true,
	}, nil
}

// DeployExisting pushes configuration and code as two separate updates,
// waiting for the first to settle before sending the second.
func (c Convention) DeployExisting(ctx context.Context, def definition.Definition, artifactPath string, existing *lambda.GetFunctionOutput) (Deployment, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.DeployExisting")
	defer span.End()

	code, err := os.ReadFile(artifactPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to read deployment package: %w", err)
	}

	if _, err := c.Service.Function.UpdateConfiguration(ctx, def.UpdateConfigurationInput()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to update function configuration: %w", err)
	}

	if err := c.Service.Function.WaitUpdated(ctx, def.FunctionName, UpdateTimeout); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("function configuration did not settle: %w", err)
	}

	updated, err := c.Service.Function.UpdateCode(ctx, def.UpdateCodeInput(code))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to update function code: %w", err)
	}

	arn := updated.FunctionArn
	if arn == nil && existing.Configuration != nil {
		arn = existing.Configuration.FunctionArn
	}

	if tags := c.tags(def.Tags); len(tags) > 0 && arn != nil {
		if _, err := c.Service.Function.Tag(ctx, aws.ToString(arn), tags); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Deployment{}, fmt.Errorf("failed to tag function: %w", err)
		}
	}

	return Deployment{
		Name:       def.FunctionName,
		Arn:        arn,
		CodeSha256: updated.CodeSha256,
		Version:    updated.Version,
	}, nil
}

// tags layers the revision tags over the ones the definition declares.
func (c Convention) tags(declared map[string]string) map[string]string {
	revision := c.Config.Tags()
	if len(declared) == 0 && len(revision) == 0 {
		return nil
	}

	tags := make(map[string]string, len(declared)+len(revision))
	maps.Copy(tags, declared)
	maps.Copy(tags, revision)

	return tags
}
