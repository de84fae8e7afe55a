package domain

// RawFile is the bytes of a file read from disk, before normalisation.
type RawFile struct {
	// Path is the absolute file path.
	Path string

	// Content is the raw bytes.
	Content []byte
}
