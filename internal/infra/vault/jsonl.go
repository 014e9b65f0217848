// Package vault keeps the append-only history of every harvested entry as
// newline-delimited JSON.
package vault

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

const DefaultPath = "vault/mirrorsentinel_vault.jsonl"

type AppendLog struct {
	path string
	log  logger.Logger
}

func NewAppendLog(path string, log logger.Logger) *AppendLog {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &AppendLog{path: path, log: log}
}

func (a *AppendLog) Path() string {
	return a.path
}

// Append writes one line per entry. Entries that cannot be encoded are skipped
// and do not abort the batch. It returns how many lines reached the file, also
// when a later write fails.
func (a *AppendLog) Append(entries []entity.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return 0, fmt.Errorf("create vault dir: %w", err)
	}

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open vault: %w", err)
	}
	defer f.Close()

	return a.writeLines(f, entries)
}

// writeLines issues one write per line so a failure leaves only whole lines
// behind and the returned count matches them.
func (a *AppendLog) writeLines(w io.Writer, entries []entity.Entry) (int, error) {
	written := 0
	for i, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			a.log.Warn("Skipping unserializable vault entry", logger.Int("index", i), logger.Error(err))
			continue
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return written, fmt.Errorf("append vault entry %d: %w", i, err)
		}
		written++
	}
	return written, nil
}

// ReadAll returns every JSON object line in file order. A missing file is an
// empty vault.
func (a *AppendLog) ReadAll() ([]entity.Entry, error) {
	entries := []entity.Entry{}

	f, err := os.Open(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	lineNo := 0
	for {
		line, readErr := r.ReadBytes('\n')
		lineNo++
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var entry entity.Entry
			if err := json.Unmarshal(trimmed, &entry); err != nil || entry == nil {
				a.log.Debug("Skipping malformed vault line", logger.Int("line", lineNo))
			} else {
				entries = append(entries, entry)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read vault: %w", readErr)
		}
	}

	return entries, nil
}

// Tail returns the last n entries.
func (a *AppendLog) Tail(n int) ([]entity.Entry, error) {
	entries, err := a.ReadAll()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
