package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectPaths captures canonical locations inside the add-on project tree.
type ProjectPaths struct {
	Root             string
	AddonConfigFile  string
	BuildFile        string
	DevContainerDir  string
	DevContainerFile string
	DocFile          string
	GitDir           string
	GitIgnoreFile    string
}

// Resolve determines the project root from the optional flag value or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return NewProjectPaths(root), nil
}

// NewProjectPaths builds the path set for a project rooted at root.
func NewProjectPaths(root string) ProjectPaths {
	devContainerDir := filepath.Join(root, ".devcontainer")
	return ProjectPaths{
		Root:             root,
		AddonConfigFile:  filepath.Join(root, "config.yaml"),
		BuildFile:        filepath.Join(root, "build.yaml"),
		DevContainerDir:  devContainerDir,
		DevContainerFile: filepath.Join(devContainerDir, "devcontainer.json"),
		DocFile:          filepath.Join(root, "DEVELOPMENT.md"),
		GitDir:           filepath.Join(root, ".git"),
		GitIgnoreFile:    filepath.Join(root, ".gitignore"),
	}
}

// GlobalDir returns the user-level komodosetup directory (~/.komodosetup).
// It creates the directory if it does not exist.
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".komodosetup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global dir: %w", err)
	}
	return dir, nil
}

// GlobalLogsDir returns the global logs directory (~/.komodosetup/logs).
// It creates the directory if it does not exist.
func GlobalLogsDir() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(global, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
