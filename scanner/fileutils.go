package scanner

import (
	"fmt"
	"os"
)

// checkFolder verifies that path exists and is a directory
func checkFolder(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("folder path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access folder path: %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}
