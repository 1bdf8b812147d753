package files

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// FileStorage persists task attachments. Files are addressed by the
// attachment UUID; the original filename lives on the task record.
type FileStorage interface {
	SaveFile(
		ctx context.Context,
		fileID uuid.UUID,
		file io.Reader,
		size int64,
		contentType string,
	) error

	GetFile(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, error)

	// DeleteFile is a no-op when the file is already gone.
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}
