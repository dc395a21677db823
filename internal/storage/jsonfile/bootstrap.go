package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	UsersFile       = "users.json"
	TweetsFile      = "tweets.json"
	CredentialsFile = "credentials.json"
)

// Bootstrap creates dir and seeds every missing collection file with an
// empty array. Existing files are left alone.
func Bootstrap(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	for _, name := range []string{UsersFile, TweetsFile, CredentialsFile} {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}
	}
	return nil
}
