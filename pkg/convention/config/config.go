package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/wscoble/lambda-deployer/internal/gitlib"
	"github.com/wscoble/lambda-deployer/internal/umwelt"
)

const (
	SelfPackage  = "lambda-deployer"
	TagGitSha    = "lambda-deployer:git-sha"
	TagGitBranch = "lambda-deployer:git-branch"
)

type Caller struct {
	Arn string
}

type Account struct {
	Id     string
	Region string
}

type Git struct {
	Branch string
	Sha    string
	Root   string
	Dirty  bool
}

// Project is the on-disk layout of a deployable project.
type Project struct {
	Dir            string
	SourceDir      string
	Requirements   string
	DefinitionFile string
	DeployDir      string
	VenvDir        string
	DeploymentsDir string
}

type Config struct {
	Project     Project
	Caller      Caller
	Account     Account
	Git         Git
	SelfPackage string
}

func FromHere(here umwelt.Here) (c Config) {
	c.Project = Layout(here.Project.Dir)

	c.Caller.Arn = here.Caller.Arn

	c.Account.Id = here.Caller.Account
	c.Account.Region = here.Caller.Region

	c.Git.Branch = here.Git.Branch
	c.Git.Sha = here.Git.Sha
	c.Git.Root = here.Git.Root
	c.Git.Dirty = here.Git.Dirty

	c.SelfPackage = SelfPackage

	return
}

func Layout(dir string) Project {
	deployDir := filepath.Join(dir, gitlib.DeployDir)

	return Project{
		Dir:            dir,
		SourceDir:      filepath.Join(dir, "src"),
		Requirements:   filepath.Join(dir, "requirements.txt"),
		DefinitionFile: filepath.Join(dir, "function.json"),
		DeployDir:      deployDir,
		VenvDir:        filepath.Join(deployDir, "venv"),
		DeploymentsDir: filepath.Join(deployDir, "deployments"),
	}
}

// DefinitionPath resolves a user-supplied definition path against the project dir.
func (c Config) DefinitionPath(path string) string {
	if path == "" {
		return c.Project.DefinitionFile
	}

	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.Project.Dir, path)
}

func (c Config) ArtifactPath(hash string) string {
	return filepath.Join(c.Project.DeploymentsDir, hash+".zip")
}

// Tags marks deployed functions with the git revision they came from.
func (c Config) Tags() map[string]string {
	if c.Git.Sha == "" {
		return nil
	}

	tags := map[string]string{
		TagGitSha: c.Git.Sha,
	}

	if c.Git.Branch != "" {
		tags[TagGitBranch] = c.Git.Branch
	}

	return tags
}

func (c Config) Json() (string, error) {
	j, err := json.MarshalIndent(c, "", "  ")
	return string(j), err
}
