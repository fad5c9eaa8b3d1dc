package artifact

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"os"
)

// RequirementsHash is the cache key for a dependency bundle: the MD5 of the raw manifest bytes.
func RequirementsHash(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// ReadRequirements returns the manifest content, or nothing when there is no manifest.
func ReadRequirements(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []byte{}, nil
	}

	if err != nil {
		return nil, err
	}

	return content, nil
}

// HasPackages reports whether the manifest names at least one package.
func HasPackages(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 && line[0] != '#' {
			return true
		}
	}

	return false
}
