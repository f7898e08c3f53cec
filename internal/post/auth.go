package post

import (
	"bytes"
	"encoding/gob"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/McKael/madon"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

// PosterFn publishes a group of contests keyed on their start time.
type PosterFn func(groups map[time.Time]calendar.Contests) error

type logFn func(string, ...interface{})

var (
	infFn logFn = func(s string, i ...interface{}) {}
	errFn logFn = func(s string, i ...interface{}) {}
)

// LoadCredentials walks the credentials folder and decodes every client
// that was saved by a previous authorization.
func LoadCredentials(path string) (map[string]any, error) {
	creds := make(map[string]any)

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cl := new(madon.Client)
		if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(cl); err == nil {
			creds[filepath.Base(path)] = cl
		}
		return nil
	})

	return creds, err
}
