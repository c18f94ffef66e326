package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}

// Text returns the document content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Basename returns the file name without directories, used for document
// kind inference and topic id derivation.
func (f *File) Basename() string {
	return basename(f.Path)
}
