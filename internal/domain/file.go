package domain

import (
	"fmt"
	"strings"
)

// File is the file-like reference supplied by upload collaborators
// (attachments, avatars). The store keeps only the reference, never the bytes.
type File struct {
	Name string
	Size int64
	URL  string
}

// Validate checks that the reference is usable.
func (f *File) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = MsgRequired
	}
	if strings.TrimSpace(f.URL) == "" {
		fields["url"] = MsgRequired
	}
	if f.Size < 0 {
		fields["size"] = fmt.Sprintf("must not be negative, got %d", f.Size)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
