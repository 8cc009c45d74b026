package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // handle, stored in every span
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM is set when a leading UTF-8 byte order mark was stripped.
	FileHadBOM
	// FileTranscoded is set when the content was decoded from a non UTF-8 encoding.
	FileTranscoded
)

// File captures metadata and content for a single source file.
// Content is never modified after the file is added to a FileSet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
