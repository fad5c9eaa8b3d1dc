package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRoleArnFromName(t *testing.T) {
	assert.Equal(t, "arn:aws:iam::123456789012:role/lambda-basic", RoleArnFromName("123456789012", "lambda-basic"))
}

func TestIsArn(t *testing.T) {
	assert.True(t, IsArn("arn:aws:iam::123456789012:role/lambda-basic"))
	assert.False(t, IsArn("lambda-basic"))
	assert.False(t, IsArn(""))
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "requirements.txt")
	assert.NoError(t, os.WriteFile(file, []byte("requests\n"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, DirExists(filepath.Join(dir, "missing")))
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name     string
		env      string
		debug    bool
		expected zerolog.Level
	}{
		{name: "defaults to info", expected: zerolog.InfoLevel},
		{name: "debug flag", debug: true, expected: zerolog.DebugLevel},
		{name: "LOG_LEVEL wins over debug flag", env: "warn", debug: true, expected: zerolog.WarnLevel},
		{name: "LOG_LEVEL is case insensitive", env: "TRACE", expected: zerolog.TraceLevel},
		{name: "invalid LOG_LEVEL falls back", env: "chatty", expected: zerolog.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("LOG_LEVEL", tc.env)
			} else {
				os.Unsetenv("LOG_LEVEL")
			}

			SetLogLevel(tc.debug)
			assert.Equal(t, tc.expected, zerolog.GlobalLevel())
		})
	}
}
