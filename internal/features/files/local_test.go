package files

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LocalFileStorage_SaveGetDelete(t *testing.T) {
	storage := &LocalFileStorage{}
	ctx := context.Background()
	fileID := uuid.New()
	content := []byte("attachment body")

	err := storage.SaveFile(ctx, fileID, bytes.NewReader(content), int64(len(content)), "text/plain")
	require.NoError(t, err)

	reader, err := storage.GetFile(ctx, fileID)
	require.NoError(t, err)
	defer reader.Close()

	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, read)

	require.NoError(t, storage.DeleteFile(ctx, fileID))

	_, err = storage.GetFile(ctx, fileID)
	assert.Error(t, err)
}

func Test_LocalFileStorage_DeleteMissingFileIsNoop(t *testing.T) {
	storage := &LocalFileStorage{}

	assert.NoError(t, storage.DeleteFile(context.Background(), uuid.New()))
}
