package view

import (
	"testing"

	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	"github.com/wscoble/lambda-deployer/pkg/convention/deployment"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	d := deployment.Deployment{
		Name:       "orders-handler",
		Arn:        aws.String("arn:aws:lambda:us-west-2:123456789012:function:orders-handler"),
		CodeSha256: aws.String("newSha"),
		Created:    true,
	}

	got := Summary(d, ".deploy/deployments/abc.zip", config.Git{Branch: "main", Sha: "3f78685", Dirty: true})

	assert.Contains(t, got, "Created orders-handler")
	assert.Contains(t, got, "arn:aws:lambda:us-west-2:123456789012:function:orders-handler")
	assert.Contains(t, got, ".deploy/deployments/abc.zip")
	assert.Contains(t, got, "main@3f78685 (dirty)")
	assert.NotContains(t, got, "version")
}

func TestSummaryWithoutGit(t *testing.T) {
	d := deployment.Deployment{Name: "orders-handler", Arn: aws.String("arn")}

	got := Summary(d, "abc.zip", config.Git{})

	assert.Contains(t, got, "Updated orders-handler")
	assert.NotContains(t, got, "revision")
}
