package usecase

import "context"

// BlobStorage is the slice of the storage client the usecases need for
// attachment resolution.
type BlobStorage interface {
	UploadObject(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}
