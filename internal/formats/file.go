package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"recue/internal/subtitle"
)

// Open reads and parses a subtitle file, resolving the format from the file
// extension. Files that are not valid UTF-8 are decoded as Windows-1252,
// which covers the legacy Latin encodings subtitle rips commonly ship with.
func Open(path string) (*subtitle.Subtitles, error) {
	name, ok := Detect(path)
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, ErrInvalidExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		if data, err = charmap.Windows1252.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return Read(string(data), name)
}

// Save renders subtitles in the format matching path's extension and writes
// them atomically: the text lands in a uniquely named temp file that is
// renamed over the destination while an advisory lock on the destination is
// held, so concurrent writers never interleave partial output.
func Save(path string, subs *subtitle.Subtitles) error {
	name, ok := Detect(path)
	if !ok {
		return fmt.Errorf("save %s: %w", path, ErrInvalidExtension)
	}
	text, err := Write(subs, name)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
