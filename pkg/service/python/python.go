package python

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/wscoble/lambda-deployer/internal/util"

	"github.com/rs/zerolog/log"
)

// Service drives an isolated python environment: virtualenv when it is on PATH,
// otherwise the venv module of python3.
type Service struct {
	Binary string
	Module bool
}

func FromPath(ctx context.Context) (Service, error) {
	if binary, err := exec.LookPath("virtualenv"); err == nil {
		return Service{Binary: binary}, nil
	}

	binary, err := exec.LookPath("python3")
	if err != nil {
		return Service{}, fmt.Errorf("neither virtualenv nor python3 found on PATH: %w", err)
	}

	return Service{Binary: binary, Module: true}, nil
}

// CreateEnv creates the environment at dir, or refreshes it when it already exists.
func (s Service) CreateEnv(ctx context.Context, dir string) error {
	var args []string
	if s.Module {
		args = []string{"-m", "venv", dir}
	} else {
		args = []string{dir, "--quiet"}
	}

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	log.Debug().Str("binary", s.Binary).Strs("args", args).Msg("creating python environment")

	if _, err := cmd.Output(); err != nil {
		return fmt.Errorf("failed to create python environment at %s: %w", dir, err)
	}

	return nil
}

func (s Service) Pip(dir string) (string, error) {
	pip := filepath.Join(dir, "bin", "pip")
	if runtime.GOOS == "windows" {
		pip = filepath.Join(dir, "Scripts", "pip.exe")
	}

	if !util.FileExists(pip) {
		return "", fmt.Errorf("pip not found in python environment: %s", pip)
	}

	return pip, nil
}

func (s Service) Install(ctx context.Context, dir, requirements string) error {
	pip, err := s.Pip(dir)
	if err != nil {
		return err
	}

	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, pip, "install", "-r", requirements)
	cmd.Env = os.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install -r %s: %w", requirements, err)
	}

	log.Debug().Str("requirements", requirements).Msg(stdout.String())

	return nil
}

func (s Service) SitePackages(dir string) (string, error) {
	if runtime.GOOS == "windows" {
		sitePackages := filepath.Join(dir, "Lib", "site-packages")
		if !util.DirExists(sitePackages) {
			return "", fmt.Errorf("site-packages not found in python environment: %s", sitePackages)
		}
		return sitePackages, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "lib", "python*", "site-packages"))
	if err != nil {
		return "", err
	}

	sort.Strings(matches)
	for _, match := range matches {
		if util.DirExists(match) {
			return match, nil
		}
	}

	return "", fmt.Errorf("site-packages not found in python environment: %s", dir)
}
