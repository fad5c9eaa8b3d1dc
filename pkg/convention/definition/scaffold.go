package definition

import (
	"embed"
	"errors"
	"os"
)

//go:embed embedded/function.json
var embedded embed.FS

var ErrExists = errors.New("function definition already exists")

func Template() ([]byte, error) {
	return embedded.ReadFile("embedded/function.json")
}

// Scaffold writes the template definition to path. An existing file is never touched.
func Scaffold(path string) error {
	content, err := Template()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return ErrExists
	}

	if err != nil {
		return err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
