package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/wscoble/lambda-deployer/internal/gitlib"
	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	projectmock "github.com/wscoble/lambda-deployer/pkg/mock/project"
	servicemock "github.com/wscoble/lambda-deployer/pkg/mock/service"
	umweltmock "github.com/wscoble/lambda-deployer/pkg/mock/umwelt"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const requirements = "# runtime\nrequests==2.31.0\n"

func zipListing(t *testing.T, path string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	listing := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		listing[f.Name] = string(content)
	}

	return listing
}

func names(listing map[string]string) []string {
	var names []string
	for name := range listing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestRequirementsHash(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", RequirementsHash([]byte{}))
	assert.Equal(t, RequirementsHash([]byte(requirements)), RequirementsHash([]byte(requirements)))
	assert.NotEqual(t, RequirementsHash([]byte("six\nrequests\n")), RequirementsHash([]byte("requests\nsix\n")))
}

func TestHasPackages(t *testing.T) {
	assert.False(t, HasPackages(nil))
	assert.False(t, HasPackages([]byte("")))
	assert.False(t, HasPackages([]byte("\n   \n# only a comment\n\t# indented comment\n")))
	assert.True(t, HasPackages([]byte("# comment\n  requests\n")))
	assert.True(t, HasPackages([]byte("requests\r\n")))

	longComment := "# " + strings.Repeat("x", 70*1024) + "\n"
	assert.True(t, HasPackages([]byte(longComment+"requests==2.31.0\n")))
	assert.False(t, HasPackages([]byte(longComment)))
}

func TestReadRequirements(t *testing.T) {
	dir := t.TempDir()

	got, err := ReadRequirements(filepath.Join(dir, "requirements.txt"))
	assert.NoError(t, err)
	assert.Empty(t, got)

	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(requirements), 0644))
	got, err = ReadRequirements(path)
	assert.NoError(t, err)
	assert.Equal(t, requirements, string(got))
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	content := requirements
	sources := []string{"handler.py", "lib/orders.py"}
	deps := []string{"requests/__init__.py", "six.py", "lambda-deployer/cli.py", "vendor/lambda-deployer/keep.py"}

	expectedNames := []string{
		"handler.py",
		"lib/orders.py",
		"requests/__init__.py",
		"six.py",
		"vendor/lambda-deployer/keep.py",
	}

	setup := func(t *testing.T, requirements *string) (config.Config, string) {
		dir := t.TempDir()
		projectmock.MockProject(dir, requirements, sources...)
		sitePackages := projectmock.MockSitePackages(t.TempDir(), deps...)
		return config.FromHere(umweltmock.FromDir(dir, gitlib.DotGit{})), sitePackages
	}

	tests := []struct {
		name string
		test func(*testing.T)
	}{
		{
			name: "installs dependencies when no archive exists for the manifest hash",
			test: func(t *testing.T) {
				cfg, sitePackages := setup(t, &content)

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(nil)
				mps.On("Install", mock.Anything, cfg.Project.VenvDir, cfg.Project.Requirements).Return(nil).Once()
				mps.On("SitePackages", cfg.Project.VenvDir).Return(sitePackages, nil)

				got, err := FromServices(cfg, mps).Build(ctx)
				require.NoError(t, err)

				assert.Equal(t, cfg.ArtifactPath(RequirementsHash([]byte(content))), got)
				if diff := cmp.Diff(expectedNames, names(zipListing(t, got))); diff != "" {
					t.Errorf("archive listing mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, "# lib/orders.py\n", zipListing(t, got)["lib/orders.py"])

				mps.AssertExpectations(t)
			},
		},
		{
			name: "skips install when an archive for the manifest hash exists",
			test: func(t *testing.T) {
				cfg, sitePackages := setup(t, &content)

				cached := cfg.ArtifactPath(RequirementsHash([]byte(content)))
				require.NoError(t, os.MkdirAll(filepath.Dir(cached), os.ModePerm))
				require.NoError(t, os.WriteFile(cached, []byte("stale"), 0644))

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(nil)
				mps.On("SitePackages", cfg.Project.VenvDir).Return(sitePackages, nil)

				got, err := FromServices(cfg, mps).Build(ctx)
				require.NoError(t, err)

				assert.Equal(t, cached, got)
				assert.Equal(t, expectedNames, names(zipListing(t, got)))

				mps.AssertNotCalled(t, "Install", mock.Anything, mock.Anything, mock.Anything)
				mps.AssertExpectations(t)
			},
		},
		{
			name: "skips install and hashes empty content when there is no manifest",
			test: func(t *testing.T) {
				cfg, sitePackages := setup(t, nil)

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(nil)
				mps.On("SitePackages", cfg.Project.VenvDir).Return(sitePackages, nil)

				got, err := FromServices(cfg, mps).Build(ctx)
				require.NoError(t, err)

				assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e.zip", filepath.Base(got))
				mps.AssertNotCalled(t, "Install", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "skips install when the manifest only has comments",
			test: func(t *testing.T) {
				comments := "# nothing yet\n"
				cfg, sitePackages := setup(t, &comments)

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(nil)
				mps.On("SitePackages", cfg.Project.VenvDir).Return(sitePackages, nil)

				_, err := FromServices(cfg, mps).Build(ctx)
				require.NoError(t, err)

				mps.AssertNotCalled(t, "Install", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "install failure aborts without leaving an archive behind",
			test: func(t *testing.T) {
				cfg, _ := setup(t, &content)

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(nil)
				mps.On("Install", mock.Anything, cfg.Project.VenvDir, cfg.Project.Requirements).Return(fmt.Errorf("pip exited 1"))

				_, err := FromServices(cfg, mps).Build(ctx)
				assert.EqualError(t, err, "pip exited 1")
				assert.NoFileExists(t, cfg.ArtifactPath(RequirementsHash([]byte(content))))
				mps.AssertNotCalled(t, "SitePackages", mock.Anything)
			},
		},
		{
			name: "environment creation failure aborts",
			test: func(t *testing.T) {
				cfg, _ := setup(t, &content)

				mps := &servicemock.MockPythonService{}
				mps.On("CreateEnv", mock.Anything, cfg.Project.VenvDir).Return(fmt.Errorf("virtualenv not found"))

				_, err := FromServices(cfg, mps).Build(ctx)
				assert.EqualError(t, err, "virtualenv not found")
				mps.AssertNotCalled(t, "Install", mock.Anything, mock.Anything, mock.Anything)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.test)
	}
}

func TestArchiveLastWriteWins(t *testing.T) {
	deps := projectmock.MockSitePackages(t.TempDir(), "handler.py")
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "handler.py"), []byte("project"), 0644))

	out := filepath.Join(t.TempDir(), "out.zip")
	f, err := os.Create(out)
	require.NoError(t, err)

	archive := NewArchive(f)
	require.NoError(t, archive.AddTree(deps, nil))
	require.NoError(t, archive.AddTree(src, nil))
	require.NoError(t, archive.Close())
	require.NoError(t, f.Close())

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	assert.Len(t, r.File, 2)
	assert.Equal(t, "project", zipListing(t, out)["handler.py"])
}
