package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wscoble/lambda-deployer/internal/util"
	"github.com/wscoble/lambda-deployer/pkg/convention/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PythonService interface {
	CreateEnv(ctx context.Context, dir string) error
	Install(ctx context.Context, dir, requirements string) error
	SitePackages(dir string) (string, error)
}

type Services struct {
	Python PythonService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, p PythonService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Python: p,
		},
	}
}

// Build produces the deployment archive for the project and returns its path.
// Dependencies are only installed when the manifest names packages and no
// archive exists yet for the manifest's hash. The archive itself is always
// rebuilt so source changes are picked up.
func (c Convention) Build(ctx context.Context) (string, error) {
	ctx, span := otel.Tracer("").Start(ctx, "artifact.Build")
	defer span.End()

	path, err := c.build(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.String("artifact.path", path))
	return path, nil
}

func (c Convention) build(ctx context.Context) (string, error) {
	project := c.Config.Project

	if err := c.Service.Python.CreateEnv(ctx, project.VenvDir); err != nil {
		return "", err
	}

	requirements, err := ReadRequirements(project.Requirements)
	if err != nil {
		return "", fmt.Errorf("failed to read requirements: %w", err)
	}

	hash := RequirementsHash(requirements)
	artifactPath := c.Config.ArtifactPath(hash)

	switch {
	case !HasPackages(requirements):
		log.Debug().Str("requirements", project.Requirements).Msg("no packages to install")
	case util.FileExists(artifactPath):
		log.Debug().Str("hash", hash).Msg("dependencies unchanged, skipping install")
	default:
		if err := c.Service.Python.Install(ctx, project.VenvDir, project.Requirements); err != nil {
			return "", err
		}
	}

	sitePackages, err := c.Service.Python.SitePackages(project.VenvDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(project.DeploymentsDir, os.ModePerm); err != nil {
		return "", err
	}

	if err := c.writeArchive(artifactPath, sitePackages); err != nil {
		return "", err
	}

	return artifactPath, nil
}

// writeArchive assembles the zip next to its final path and renames it into
// place, so an interrupted build never leaves a hash-named archive behind.
func (c Convention) writeArchive(artifactPath, sitePackages string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(artifactPath), ".tmp-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	archive := NewArchive(tmp)

	skipSelf := func(rel string, dir bool) bool {
		return dir && rel == c.Config.SelfPackage
	}

	if err = archive.AddTree(sitePackages, skipSelf); err != nil {
		return fmt.Errorf("failed to add dependencies: %w", err)
	}

	if util.DirExists(c.Config.Project.SourceDir) {
		if err = archive.AddTree(c.Config.Project.SourceDir, nil); err != nil {
			return fmt.Errorf("failed to add project source: %w", err)
		}
	} else {
		log.Warn().Str("dir", c.Config.Project.SourceDir).Msg("project source directory not found")
	}

	if err = archive.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), artifactPath)
}
