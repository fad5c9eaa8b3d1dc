package mock

import (
	"os"
	"path/filepath"

	mockfixture "github.com/wscoble/lambda-deployer/pkg/mock/fixture"

	"github.com/rs/zerolog/log"
)

// MockProject lays out a deployable project under root: a function.json, an
// optional requirements.txt and the given source files under src/.
func MockProject(root string, requirements *string, sources ...string) {
	srcPath := filepath.Join(root, "src")
	if err := os.MkdirAll(srcPath, os.ModePerm); err != nil {
		log.Fatal().Err(err).Msg("failed to create source directory")
	}

	if err := mockfixture.Copy("function.json", filepath.Join(root, "function.json")); err != nil {
		log.Fatal().Err(err).Msg("failed to copy function.json")
	}

	if requirements != nil {
		if err := os.WriteFile(filepath.Join(root, "requirements.txt"), []byte(*requirements), 0644); err != nil {
			log.Fatal().Err(err).Msg("failed to write requirements.txt")
		}
	}

	writeFiles(srcPath, sources...)
}

// MockSitePackages creates an installed-packages directory holding the given files.
func MockSitePackages(root string, files ...string) string {
	sitePackages := filepath.Join(root, "lib", "python3.12", "site-packages")
	if err := os.MkdirAll(sitePackages, os.ModePerm); err != nil {
		log.Fatal().Err(err).Msg("failed to create site-packages directory")
	}

	writeFiles(sitePackages, files...)

	return sitePackages
}

func writeFiles(base string, files ...string) {
	for _, file := range files {
		path := filepath.Join(base, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			log.Fatal().Err(err).Msg("failed to create directory")
		}

		if err := os.WriteFile(path, []byte("# "+file+"\n"), 0644); err != nil {
			log.Fatal().Err(err).Msg("failed to write file")
		}
	}
}
