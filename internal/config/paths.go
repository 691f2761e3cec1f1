package config

import (
	"os"
	"path/filepath"
)

// defaultCacheDSN places the sqlite cache under the user cache directory,
// falling back to the working directory.
func defaultCacheDSN() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "attendance.db"
	}
	return filepath.Join(dir, "attendance-go", "attendance.db")
}
