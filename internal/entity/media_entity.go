package entity

// SavedFile is a file written to the media directory.
type SavedFile struct {
	Filename string
	Path     string
	Size     int64
}
