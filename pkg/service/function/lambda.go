package function

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/smithy-go"
)

const ErrCodeNotFound = "ResourceNotFoundException"

// IsNotFound reports whether err is the provider's not-found response.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == ErrCodeNotFound
	}
	return false
}

func (s Service) Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	getFunctionInput := &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	}

	return s.Client.Lambda.GetFunction(ctx, getFunctionInput)
}

func (s Service) Create(ctx context.Context, input *lambda.CreateFunctionInput) (*lambda.CreateFunctionOutput, error) {
	return s.Client.Lambda.CreateFunction(ctx, input)
}

func (s Service) UpdateConfiguration(ctx context.Context, input *lambda.UpdateFunctionConfigurationInput) (*lambda.UpdateFunctionConfigurationOutput, error) {
	return s.Client.Lambda.UpdateFunctionConfiguration(ctx, input)
}

func (s Service) UpdateCode(ctx context.Context, input *lambda.UpdateFunctionCodeInput) (*lambda.UpdateFunctionCodeOutput, error) {
	return s.Client.Lambda.UpdateFunctionCode(ctx, input)
}

// WaitUpdated blocks until the function's last update has settled, so a code
// upload does not collide with an in-flight configuration change.
func (s Service) WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error {
	waiter := lambda.NewFunctionUpdatedWaiter(s.Client.Lambda, func(o *lambda.FunctionUpdatedWaiterOptions) {
		o.MinDelay = time.Second
	})

	getFunctionConfigurationInput := &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(name),
	}

	return waiter.Wait(ctx, getFunctionConfigurationInput, maxWait)
}

func (s Service) Tag(ctx context.Context, arn string, tags map[string]string) (*lambda.TagResourceOutput, error) {
	tagResourceInput := &lambda.TagResourceInput{
		Resource: aws.String(arn),
		Tags:     tags,
	}

	return s.Client.Lambda.TagResource(ctx, tagResourceInput)
}
