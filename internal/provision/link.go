package provision

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"komodosetup/internal/haconfig"
)

// backupTimestampLayout is sortable at second granularity so successive
// backups order lexically.
const backupTimestampLayout = "20060102_150405"

// copyExclusions are skipped when the add-on tree has to be copied instead
// of symlinked: version control metadata, the editor container directory,
// the installer's own sources, legacy setup scripts, and generated docs.
var copyExclusions = []string{
	".git",
	".devcontainer",
	"cmd",
	"internal",
	"go.mod",
	"go.sum",
	"*.go",
	"*.py",
	"*.sh",
	"*.ps1",
	"DEVELOPMENT.md",
}

// linkAddon places the project tree inside the Home Assistant addons
// directory under the add-on slug. An existing target is renamed to a
// timestamped backup first, never merged or silently overwritten.
func (s *Service) linkAddon(root haconfig.ConfigRoot, slug string) error {
	s.Reporter.Info("Setting up local development environment...")

	addonsDir := root.AddonsDir()
	if err := os.MkdirAll(addonsDir, 0o755); err != nil {
		return fmt.Errorf("create addons dir: %w", err)
	}

	target := filepath.Join(addonsDir, slug)
	if _, err := os.Lstat(target); err == nil {
		backup := target + ".backup." + s.now().Format(backupTimestampLayout)
		s.Reporter.Warn("Addon directory exists, backing up to: %s", backup)
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("back up existing addon dir: %w", err)
		}
		s.Logger.Printf("backed up %s to %s", target, backup)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat addon target: %w", err)
	}

	if err := os.Symlink(s.Paths.Root, target); err != nil {
		// Symlink creation commonly fails on Windows without developer
		// mode; fall back to a filtered copy.
		s.Reporter.Warn("Cannot create symlink, copying files instead...")
		if err := copyTree(s.Paths.Root, target); err != nil {
			return fmt.Errorf("copy addon files: %w", err)
		}
		s.Reporter.Info("Copied addon files to: %s", target)
		s.Logger.Printf("copied %s to %s", s.Paths.Root, target)
		return nil
	}

	s.Reporter.Info("Created symlink: %s -> %s", target, s.Paths.Root)
	s.Logger.Printf("linked %s to %s", target, s.Paths.Root)
	return nil
}

func excluded(name string) bool {
	for _, pattern := range copyExclusions {
		if match, _ := filepath.Match(pattern, name); match {
			return true
		}
	}
	return false
}

// copyTree recursively copies src to dst, skipping excluded entries by base
// name.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dst, 0o755)
		}
		if excluded(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dest, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}
