package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadEncoded reads path and decodes it from the named encoding into UTF-8
// before adding it to the set. Names follow the WHATWG encoding index
// ("utf-16le", "latin1", "windows-1252", "shift_jis", ...). An empty name or
// "utf-8" behaves exactly like Load and keeps the bytes untouched, so invalid
// UTF-8 stays visible to the lexer.
func (fileSet *FileSet) LoadEncoded(path, encoding string) (FileID, error) {
	if isUTF8Name(encoding) {
		return fileSet.Load(path)
	}
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, err := Decode(raw, encoding)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	content, hadBOM := removeBOM(content)
	flags := FileTranscoded
	if hadBOM {
		flags |= FileHadBOM
	}
	return fileSet.Add(path, content, flags), nil
}

// ErrDecode is wrapped by every error caused by the content rather than by
// reading the file.
var ErrDecode = errors.New("cannot decode source")

// Decode converts raw bytes in the named encoding to UTF-8. A byte order mark
// at the start of raw overrides the requested encoding.
func Decode(raw []byte, encoding string) ([]byte, error) {
	if isUTF8Name(encoding) {
		return raw, nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q: %w", ErrDecode, encoding, err)
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, encoding, err)
	}
	return out, nil
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}
