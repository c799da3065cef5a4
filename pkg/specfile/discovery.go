package specfile

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/logging"
	"github.com/arthur-debert/slink/pkg/types"
)

// Find returns the paths of all spec files under root, sorted for consistent
// ordering. A spec file is any file (or symlink) whose base name equals
// filename. depth limits how many directory levels below root are scanned:
// 0 means root itself only, a negative value means unlimited.
//
// Directories that cannot be read during the walk are logged and skipped;
// only a missing or non-directory root is an error. Symlinked directories are
// reported as files and not descended into.
func Find(root, filename string, depth int, fsys types.FS) ([]string, error) {
	logger := logging.GetLogger("specfile.discovery")
	logger.Trace().Str("root", root).Str("filename", filename).Int("depth", depth).
		Msg("Scanning for spec files")

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirNotFound, "scan directory does not exist").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrDirNotFound, "scan path is not a directory").
			WithDetail("path", root)
	}

	var files []string
	findIn(root, filename, depth, fsys, &files)

	// Sort for consistent ordering
	sort.Strings(files)

	logger.Debug().Int("count", len(files)).Str("root", root).Msg("Found spec files")
	return files, nil
}

// findIn collects matches under dir. depth is the number of directory levels
// still allowed below dir; it never reaches zero when the walk is unlimited.
func findIn(dir, filename string, depth int, fsys types.FS, files *[]string) {
	logger := logging.GetLogger("specfile.discovery")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		logger.Warn().Err(err).Str("path", dir).Msg("Cannot read directory, skipping")
		return
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if depth == 0 {
				logger.Trace().Str("path", fullPath).Msg("Depth limit reached, not descending")
				continue
			}
			findIn(fullPath, filename, depth-1, fsys, files)
			continue
		}

		if entry.Name() == filename {
			*files = append(*files, fullPath)
			logger.Trace().Str("path", fullPath).Msg("Found spec file")
		}
	}
}
