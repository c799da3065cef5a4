package engine

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/style"
)

// skip leaves the conflicting file in place and only reports it.
func (e *Engine) skip(target, link string) error {
	e.logger.Debug().Str("link", link).Msg("Skipped conflicting link path")
	return e.feedback(style.OutcomeSkip, target, link)
}

// backup moves the conflicting file into the backup directory, then creates
// the symlink. The two steps are not rolled back as a unit: if the symlink
// creation fails after a successful rename, the file stays in the backup
// directory.
func (e *Engine) backup(target, link string) error {
	backupPath := filepath.Join(e.params.BackupDir, backupName(link, e.now()))

	if err := e.fs.Rename(link, backupPath); err != nil {
		return errors.Wrapf(err, errors.ErrBackupRename, "failed to backup! couldn't move %s to %s", link, backupPath).
			WithDetail("link", link).
			WithDetail("backup", backupPath)
	}
	e.logger.Info().Str("link", link).Str("backup", backupPath).Msg("Backed up conflicting file")

	if err := e.fs.Symlink(target, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create %s -> %s", link, target).
			WithDetail("link", link).
			WithDetail("target", target)
	}

	return e.feedback(style.OutcomeBackup, target, link)
}

// overwrite removes the conflicting file, then creates the symlink. A
// directory at the link path is removed recursively; a symlink to a
// directory only removes the symlink itself.
func (e *Engine) overwrite(target, link string) error {
	info, err := e.fs.Lstat(link)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOverwriteRemove, "failed to inspect %s before overwriting it", link).
			WithDetail("link", link)
	}

	if info.IsDir() {
		err = e.fs.RemoveAll(link)
	} else {
		err = e.fs.Remove(link)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrOverwriteRemove,
			"failed to remove %s to then make the symlink with the same path", link).
			WithDetail("link", link)
	}
	e.logger.Info().Str("link", link).Msg("Removed conflicting file")

	if err := e.fs.Symlink(target, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create %s -> %s", link, target).
			WithDetail("link", link).
			WithDetail("target", target)
	}

	return e.feedback(style.OutcomeOverwrite, target, link)
}

// backupName builds the destination name for a backed up file:
// <stem>_backup_<timestamp><ext>. The timestamp is RFC 3339 in local time,
// and the extension, when there is one, keeps its dot and moves after the
// timestamp so "vimrc.old" becomes "vimrc_backup_<ts>.old".
func backupName(link string, now time.Time) string {
	stem, ext := splitStemExt(filepath.Base(link))
	return stem + "_backup_" + now.Format(time.RFC3339Nano) + ext
}

// splitStemExt splits a base name into stem and dotted extension. A name
// whose only dot is the leading one, like ".bashrc", is all stem.
func splitStemExt(base string) (string, string) {
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base, ""
	}
	return base[:len(base)-len(ext)], ext
}
