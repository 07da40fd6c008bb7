package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Load reads and validates the roster at path. A malformed file is
// reported, never repaired.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProgressFileMissing, path)
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	return Decode(path, data)
}

// Decode parses roster bytes; path is used only for error messages.
func Decode(path string, data []byte) (*Roster, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile progress schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	var subjects []*Subject
	if err := json.Unmarshal(data, &subjects); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	seen := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		if seen[s.Name] {
			return nil, &CorruptError{Path: path, Err: fmt.Errorf("subject %q listed twice", s.Name)}
		}
		seen[s.Name] = true
	}
	return &Roster{subjects: subjects}, nil
}

// Encode renders the roster in the on-disk format.
func Encode(r *Roster) ([]byte, error) {
	subjects := r.subjects
	if subjects == nil {
		subjects = []*Subject{}
	}
	data, err := json.MarshalIndent(subjects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the full roster to path. The data goes to a temporary file
// in the same directory which is synced and then renamed over path, so a
// crash leaves either the old or the new roster on disk.
func Save(path string, r *Roster) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure progress dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp progress file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp progress file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp progress file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the rename. Not every platform can fsync a directory.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
