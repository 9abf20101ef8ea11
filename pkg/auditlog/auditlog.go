// Package auditlog persists one immutable JSON document per upload batch or
// manual edit. The files are the audit trail and the input of batch undo.
package auditlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	pkgerrors "mini-mcu/pkg/errors"
)

// timestampLayout is embedded in file names.
const timestampLayout = "20060102-150405"

// Entry describes a stored log file.
type Entry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Writer stores log files under a single directory.
type Writer struct {
	dir string
}

// NewWriter creates the directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit log dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the log directory.
func (w *Writer) Dir() string { return w.dir }

// BatchName is "{kind}-{YYYYMMDD-HHMMSS}-{filename}.json".
func BatchName(kind string, at time.Time, filename string) string {
	return fmt.Sprintf("%s-%s-%s.json", kind, at.Format(timestampLayout), sanitize(filename))
}

// ManualName is "manual-{uid}-{YYYYMMDD-HHMMSS}.json".
func ManualName(uid string, at time.Time) string {
	return fmt.Sprintf("manual-%s-%s.json", sanitize(uid), at.Format(timestampLayout))
}

// Append writes payload as a new file and returns the name actually used.
// An existing file is never touched: a clash within the same second gets a
// numeric suffix instead.
func (w *Writer) Append(name string, payload any) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode audit log: %w", err)
	}

	base := strings.TrimSuffix(name, ".json")
	candidate := name
	for i := 1; ; i++ {
		err = w.create(candidate, data)
		if !errors.Is(err, pkgerrors.ErrLogExists) {
			break
		}
		if i > 100 {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d.json", base, i)
	}
	if err != nil {
		return "", err
	}
	return candidate, nil
}

func (w *Writer) create(name string, data []byte) error {
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return pkgerrors.ErrLogExists
		}
		return fmt.Errorf("create audit log: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write audit log: %w", err)
	}
	return f.Close()
}

// Read decodes the named file into v. A missing file yields fs.ErrNotExist.
func (w *Writer) Read(name string, v any) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(w.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode audit log %s: %w", name, err)
	}
	return nil
}

// List returns the files whose name starts with prefix, newest first.
func (w *Writer) List(prefix string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("read audit log dir: %w", err)
	}

	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") || !strings.HasPrefix(de.Name(), prefix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: de.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// Remove deletes the named file. Only batch undo removes logs.
func (w *Writer) Remove(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return os.Remove(filepath.Join(w.dir, name))
}

func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || !strings.HasSuffix(name, ".json") {
		return pkgerrors.ErrInvalidLogName
	}
	return nil
}

// sanitize keeps a user supplied file name from escaping the log directory.
func sanitize(s string) string {
	s = filepath.Base(strings.ReplaceAll(s, "\\", "/"))
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
	if s == "." || s == "" {
		return "upload"
	}
	return s
}
