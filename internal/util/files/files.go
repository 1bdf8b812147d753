package files_utils

import (
	"fmt"
	"os"
)

func EnsureDirectories(directories []string) error {
	const directoryPermissions = 0755

	for _, directory := range directories {
		if _, err := os.Stat(directory); os.IsNotExist(err) {
			if err := os.MkdirAll(directory, directoryPermissions); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", directory, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check directory %s: %w", directory, err)
		}
	}

	return nil
}

// RemoveIfExists deletes the file at path, treating a missing
// file as success.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}
