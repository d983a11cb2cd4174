package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"putr/internal/config"
	"putr/internal/domain"
	"putr/internal/ledger"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// LedgerStore keeps the raw uploaded ledger files on disk.
type LedgerStore struct {
	dir    string
	logger zerolog.Logger
}

func NewLedgerStore(cfg *config.Config, logger zerolog.Logger) (*LedgerStore, error) {
	return Open(cfg.LedgersDir, logger)
}

func Open(dir string, logger zerolog.Logger) (*LedgerStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledgers directory %s: %w", dir, err)
	}
	return &LedgerStore{dir: dir, logger: logger}, nil
}

func (s *LedgerStore) Dir() string {
	return s.dir
}

// Save writes data under the sanitized base name of filename and returns the
// stored path. The write goes through a temp file and a rename, so readers
// never see a partial ledger.
func (s *LedgerStore) Save(filename string, data []byte) (string, error) {
	name, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}
	tmp := filepath.Join(s.dir, "."+name+"."+suffix+".tmp")
	dst := filepath.Join(s.dir, name)

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}

	s.logger.Debug().Str("filename", name).Int("bytes", len(data)).Msg("ledger stored")
	return dst, nil
}

// List returns the stored ledger files sorted by name.
func (s *LedgerStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !ledger.Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// SanitizeFilename strips any directory part from an uploaded name and
// rejects names without a supported ledger extension.
func SanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" || strings.HasPrefix(name, ".") {
		return "", &domain.ValidationError{Field: "filename", Value: filename, Err: fmt.Errorf("not a file name")}
	}
	if !ledger.Supported(name) {
		return "", &domain.ValidationError{Field: "filename", Value: filename, Err: fmt.Errorf("unsupported file type")}
	}
	return name, nil
}
