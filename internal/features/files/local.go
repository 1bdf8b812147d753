package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskhive-backend/internal/config"
	files_utils "taskhive-backend/internal/util/files"

	"github.com/google/uuid"
)

// LocalFileStorage keeps attachments on disk under the uploads folder.
type LocalFileStorage struct{}

func (l *LocalFileStorage) SaveFile(
	ctx context.Context,
	fileID uuid.UUID,
	file io.Reader,
	size int64,
	contentType string,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := files_utils.EnsureDirectories([]string{config.GetEnv().UploadsFolder}); err != nil {
		return fmt.Errorf("failed to ensure uploads folder: %w", err)
	}

	targetPath := filepath.Join(config.GetEnv().UploadsFolder, fileID.String())

	target, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = target.Close()
	}()

	if _, err := io.Copy(target, file); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := target.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	return nil
}

func (l *LocalFileStorage) GetFile(
	ctx context.Context,
	fileID uuid.UUID,
) (io.ReadCloser, error) {
	filePath := filepath.Join(config.GetEnv().UploadsFolder, fileID.String())

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", fileID.String())
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (l *LocalFileStorage) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	filePath := filepath.Join(config.GetEnv().UploadsFolder, fileID.String())

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
