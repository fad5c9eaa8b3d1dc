package definition

import (
	"github.com/wscoble/lambda-deployer/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// WithAccount expands a bare role name into a role ARN in the given account.
func (d Definition) WithAccount(accountId string) Definition {
	if d.Role != "" && !util.IsArn(d.Role) && accountId != "" {
		d.Role = util.RoleArnFromName(accountId, d.Role)
	}
	return d
}

func (d Definition) CreateInput(code []byte) *lambda.CreateFunctionInput {
	return &lambda.CreateFunctionInput{
		FunctionName:     aws.String(d.FunctionName),
		Description:      d.Description,
		Handler:          d.Handler,
		Timeout:          d.Timeout,
		MemorySize:       d.MemorySize,
		Runtime:          types.Runtime(d.Runtime),
		Publish:          d.Publish,
		Role:             optional(d.Role),
		KMSKeyArn:        d.KMSKeyArn,
		Environment:      d.environment(),
		DeadLetterConfig: d.deadLetterConfig(),
		VpcConfig:        d.vpcConfig(),
		Tags:             d.Tags,
		Layers:           d.Layers,
		Architectures:    d.architectures(),
		EphemeralStorage: d.ephemeralStorage(),
		TracingConfig:    d.tracingConfig(),
		Code: &types.FunctionCode{
			ZipFile: code,
		},
	}
}

// UpdateConfigurationInput leaves out Publish, Tags and Architectures, which the
// configuration call does not accept. An absent VpcConfig is sent empty.
func (d Definition) UpdateConfigurationInput() *lambda.UpdateFunctionConfigurationInput {
	vpcConfig := d.vpcConfig()
	if vpcConfig == nil {
		vpcConfig = &types.VpcConfig{
			SubnetIds:        []string{},
			SecurityGroupIds: []string{},
		}
	}

	return &lambda.UpdateFunctionConfigurationInput{
		FunctionName:     aws.String(d.FunctionName),
		Description:      d.Description,
		Handler:          d.Handler,
		Timeout:          d.Timeout,
		MemorySize:       d.MemorySize,
		Runtime:          types.Runtime(d.Runtime),
		Role:             optional(d.Role),
		KMSKeyArn:        d.KMSKeyArn,
		Environment:      d.environment(),
		DeadLetterConfig: d.deadLetterConfig(),
		VpcConfig:        vpcConfig,
		Layers:           d.Layers,
		EphemeralStorage: d.ephemeralStorage(),
		TracingConfig:    d.tracingConfig(),
	}
}

func (d Definition) UpdateCodeInput(code []byte) *lambda.UpdateFunctionCodeInput {
	return &lambda.UpdateFunctionCodeInput{
		FunctionName:  aws.String(d.FunctionName),
		ZipFile:       code,
		Architectures: d.architectures(),
		Publish:       d.Publish,
	}
}

func (d Definition) environment() *types.Environment {
	if d.Environment == nil {
		return nil
	}
	return &types.Environment{Variables: d.Environment.Variables}
}

func (d Definition) deadLetterConfig() *types.DeadLetterConfig {
	if d.DeadLetterConfig == nil {
		return nil
	}
	return &types.DeadLetterConfig{TargetArn: d.DeadLetterConfig.TargetArn}
}

func (d Definition) vpcConfig() *types.VpcConfig {
	if d.VpcConfig == nil {
		return nil
	}

	vpcConfig := &types.VpcConfig{
		SubnetIds:        d.VpcConfig.SubnetIds,
		SecurityGroupIds: d.VpcConfig.SecurityGroupIds,
	}

	if vpcConfig.SubnetIds == nil {
		vpcConfig.SubnetIds = []string{}
	}

	if vpcConfig.SecurityGroupIds == nil {
		vpcConfig.SecurityGroupIds = []string{}
	}

	return vpcConfig
}

func (d Definition) architectures() []types.Architecture {
	var architectures []types.Architecture
	for _, arch := range d.Architectures {
		architectures = append(architectures, types.Architecture(arch))
	}
	return architectures
}

func (d Definition) ephemeralStorage() *types.EphemeralStorage {
	if d.EphemeralStorage == nil {
		return nil
	}
	return &types.EphemeralStorage{Size: d.EphemeralStorage.Size}
}

func (d Definition) tracingConfig() *types.TracingConfig {
	if d.TracingConfig == nil {
		return nil
	}
	return &types.TracingConfig{Mode: types.TracingMode(d.TracingConfig.Mode)}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
