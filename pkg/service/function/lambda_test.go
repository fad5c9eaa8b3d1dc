package function

import (
	"context"
	"fmt"
	"testing"
	"time"

	clientmock "github.com/wscoble/lambda-deployer/pkg/mock/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&types.ResourceNotFoundException{Message: aws.String("Function not found")}))
	assert.True(t, IsNotFound(&smithy.GenericAPIError{Code: "ResourceNotFoundException"}))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", &smithy.GenericAPIError{Code: "ResourceNotFoundException"})))
	assert.False(t, IsNotFound(&smithy.GenericAPIError{Code: "AccessDeniedException"}))
	assert.False(t, IsNotFound(fmt.Errorf("ResourceNotFoundException")))
	assert.False(t, IsNotFound(nil))
}

func TestService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(*clientmock.MockLambdaClient)
		test  func(*testing.T, Service)
	}{
		{
			name: "Inspect calls GetFunction with the function name.",
			setup: func(mlc *clientmock.MockLambdaClient) {
				mlc.On("GetFunction", ctx, &lambda.GetFunctionInput{FunctionName: aws.String("fn")}).
					Return(&lambda.GetFunctionOutput{Configuration: &types.FunctionConfiguration{FunctionName: aws.String("fn")}}, nil)
			},
			test: func(t *testing.T, s Service) {
				got, err := s.Inspect(ctx, "fn")
				assert.NoError(t, err)
				assert.Equal(t, "fn", aws.ToString(got.Configuration.FunctionName))
			},
		},
		{
			name: "Tag calls TagResource with the arn and tags.",
			setup: func(mlc *clientmock.MockLambdaClient) {
				mlc.On("TagResource", ctx, &lambda.TagResourceInput{
					Resource: aws.String("arn:aws:lambda:us-west-2:123456789012:function:fn"),
					Tags:     map[string]string{"k": "v"},
				}).Return(&lambda.TagResourceOutput{}, nil)
			},
			test: func(t *testing.T, s Service) {
				_, err := s.Tag(ctx, "arn:aws:lambda:us-west-2:123456789012:function:fn", map[string]string{"k": "v"})
				assert.NoError(t, err)
			},
		},
		{
			name: "WaitUpdated returns once the last update succeeded.",
			setup: func(mlc *clientmock.MockLambdaClient) {
				mlc.On("GetFunctionConfiguration", mock.Anything, &lambda.GetFunctionConfigurationInput{FunctionName: aws.String("fn")}).
					Return(&lambda.GetFunctionConfigurationOutput{LastUpdateStatus: types.LastUpdateStatusSuccessful}, nil)
			},
			test: func(t *testing.T, s Service) {
				assert.NoError(t, s.WaitUpdated(ctx, "fn", time.Minute))
			},
		},
		{
			name: "WaitUpdated fails when the last update failed.",
			setup: func(mlc *clientmock.MockLambdaClient) {
				mlc.On("GetFunctionConfiguration", mock.Anything, mock.Anything).
					Return(&lambda.GetFunctionConfigurationOutput{LastUpdateStatus: types.LastUpdateStatusFailed}, nil)
			},
			test: func(t *testing.T, s Service) {
				assert.Error(t, s.WaitUpdated(ctx, "fn", time.Minute))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mlc := &clientmock.MockLambdaClient{}
			tc.setup(mlc)
			tc.test(t, FromClients(mlc))
			mlc.AssertExpectations(t)
		})
	}
}
