package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. the path provided on the command line
// 2. KKUPEOPLE_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
// An empty string means nothing was found and defaults apply.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		if fileExists(providedPath) {
			return providedPath
		}
		return ""
	}

	if envPath := os.Getenv("KKUPEOPLE_CONFIG_PATH"); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
	}

	var locations []string
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range []string{"config.yaml", "config.json"} {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
