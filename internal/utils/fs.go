package utils

import (
	"os"
	"path/filepath"
)

// SearchDirs lists where pages and config files are looked for, in order.
func SearchDirs() []string {
	dirs := []string{".", "pages"}

	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(configDir, "follow"),
			filepath.Join(configDir, "follow", "pages"),
		)
	}

	dirs = append(dirs, "/usr/share/follow", "/usr/share/follow/pages")
	return dirs
}

// ResolvePath returns name itself when it exists, otherwise the first match
// under SearchDirs, otherwise "".
func ResolvePath(name string) string {
	if name == "" {
		return ""
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}
	if filepath.IsAbs(name) {
		return ""
	}

	for _, dir := range SearchDirs() {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
