package umwelt

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/wscoble/lambda-deployer/internal/gitlib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog/log"
)

// https://en.wikipedia.org/wiki/Umwelt
//
// Umwelt (German for "environment" or "surroundings") describes where a deploy runs:
// who the caller is, which project it is looking at, and which git revision that project is on.

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type ThisCaller struct {
	Id      string
	Arn     string
	Account string
	Region  string
}

type ThisProject struct {
	Dir string
}

type Here struct {
	Caller  ThisCaller
	Git     gitlib.DotGit
	Project ThisProject
}

func FromDir(ctx context.Context, dir string, awsConfig aws.Config, stsc STSClient) (here Here, err error) {
	// Project
	if here.Project.Dir, err = filepath.Abs(dir); err != nil {
		return here, err
	}

	// Caller
	whoAmI := &sts.GetCallerIdentityInput{}
	caller, err := stsc.GetCallerIdentity(ctx, whoAmI)
	if err != nil {
		return here, err
	}

	here.Caller.Id = aws.ToString(caller.UserId)
	here.Caller.Arn = aws.ToString(caller.Arn)
	here.Caller.Account = aws.ToString(caller.Account)
	here.Caller.Region = awsConfig.Region

	// Git
	here.Git, err = gitlib.FromDir(here.Project.Dir)
	if errors.Is(err, gitlib.ErrNotGitRepo) {
		log.Debug().Str("dir", here.Project.Dir).Msg("project is not in a git repository, skipping revision tags")
		return here, nil
	}

	if err != nil {
		return here, err
	}

	return here, nil
}
