package storage

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// BlobStore holds uploaded resume files.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
	URL(key string) (string, error)
}

// ResumeKey names a resume object. The uuid suffix keeps repeated uploads
// for the same user and job from overwriting each other.
func ResumeKey(userID, jobID int64) string {
	return fmt.Sprintf("resumes/%d_%d_%s.pdf", userID, jobID, uuid.NewString())
}
