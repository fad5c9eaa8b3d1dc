package mock

import (
	"github.com/wscoble/lambda-deployer/internal/gitlib"
	"github.com/wscoble/lambda-deployer/internal/umwelt"
)

func FromDir(dir string, git gitlib.DotGit) umwelt.Here {
	return umwelt.Here{
		Caller: umwelt.ThisCaller{
			Id:      "user-123",
			Arn:     "arn:aws:iam::123456789012:user/test",
			Account: "123456789012",
			Region:  "us-west-2",
		},
		Git: git,
		Project: umwelt.ThisProject{
			Dir: dir,
		},
	}
}

func MockGit() gitlib.DotGit {
	return gitlib.DotGit{
		Branch: "feature-branch",
		Sha:    "3f786850e387550fdab836ed7e6dc881de23001b",
		Root:   "mockRepo",
		Dirty:  false,
	}
}
