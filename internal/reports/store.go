// Package reports keeps saved analysis reports as text files.
package reports

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	fileSuffix  = ".txt"
	nameInfix   = "_fundamental_"
	stampLayout = "20060102_150405"
	filePerm    = 0644
	dirPerm     = 0755
)

// ErrNotFound is returned by Load for an unknown report name.
var ErrNotFound = errors.New("report not found")

// Report describes one saved report file.
type Report struct {
	Name      string
	Symbol    string
	CreatedAt time.Time
	Size      int64
}

// Store reads and writes reports under Dir.
type Store struct {
	Dir string
	Now func() time.Time
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, Now: time.Now}
}

// Save writes text as SYMBOL_fundamental_YYYYMMDD_HHMMSS.txt and returns its path.
func (s *Store) Save(symbol, text string) (string, error) {
	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	name := symbol + nameInfix + s.Now().Format(stampLayout) + fileSuffix
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, []byte(text), filePerm); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// List returns saved reports, newest first. A missing directory yields none.
func (s *Store) List() ([]Report, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Report
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		r := Report{Name: e.Name(), CreatedAt: info.ModTime(), Size: info.Size()}
		if sym, at, ok := parseName(e.Name()); ok {
			r.Symbol, r.CreatedAt = sym, at
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Load returns the content of a saved report by file name.
func (s *Store) Load(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", err
	}
	return string(data), nil
}

func parseName(name string) (string, time.Time, bool) {
	base := strings.TrimSuffix(name, fileSuffix)
	i := strings.LastIndex(base, nameInfix)
	if i <= 0 {
		return "", time.Time{}, false
	}
	at, err := time.ParseInLocation(stampLayout, base[i+len(nameInfix):], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return base[:i], at, true
}
