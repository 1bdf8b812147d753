package files

import (
	"sync"

	"taskhive-backend/internal/config"
	"taskhive-backend/internal/util/logger"
)

var (
	fileStorage FileStorage
	once        sync.Once
)

// GetFileStorage returns the attachment storage selected by FILE_STORAGE.
func GetFileStorage() FileStorage {
	once.Do(func() {
		if config.GetEnv().FileStorageType == "s3" {
			s3Storage, err := NewS3FileStorage()
			if err != nil {
				logger.GetLogger().Error("Failed to initialize S3 file storage", "error", err)
				panic(err)
			}
			fileStorage = s3Storage
			return
		}

		fileStorage = &LocalFileStorage{}
	})

	return fileStorage
}
