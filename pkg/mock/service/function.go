package mock

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/mock"
)

type MockFunctionService struct {
	mock.Mock
}

func (m *MockFunctionService) Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*lambda.GetFunctionOutput), args.Error(1)
}

func (m *MockFunctionService) Create(ctx context.Context, input *lambda.CreateFunctionInput) (*lambda.CreateFunctionOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*lambda.CreateFunctionOutput), args.Error(1)
}

func (m *MockFunctionService) UpdateConfiguration(ctx context.Context, input *lambda.UpdateFunctionConfigurationInput) (*lambda.UpdateFunctionConfigurationOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*lambda.UpdateFunctionConfigurationOutput), args.Error(1)
}

func (m *MockFunctionService) UpdateCode(ctx context.Context, input *lambda.UpdateFunctionCodeInput) (*lambda.UpdateFunctionCodeOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*lambda.UpdateFunctionCodeOutput), args.Error(1)
}

func (m *MockFunctionService) WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error {
	args := m.Called(ctx, name, maxWait)
	return args.Error(0)
}

func (m *MockFunctionService) Tag(ctx context.Context, arn string, tags map[string]string) (*lambda.TagResourceOutput, error) {
	args := m.Called(ctx, arn, tags)
	return args.Get(0).(*lambda.TagResourceOutput), args.Error(1)
}

func MockFunctionArn(accountId, region, name string) string {
	return "arn:aws:lambda:" + region + ":" + accountId + ":function:" + name
}

func MockGetFunctionOutput(accountId, region, name string) *lambda.GetFunctionOutput {
	return &lambda.GetFunctionOutput{
		Configuration: &types.FunctionConfiguration{
			FunctionName:     aws.String(name),
			FunctionArn:      aws.String(MockFunctionArn(accountId, region, name)),
			CodeSha256:       aws.String("previousSha"),
			LastUpdateStatus: types.LastUpdateStatusSuccessful,
		},
		Tags: map[string]string{},
	}
}
