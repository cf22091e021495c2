package housekeeping

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Sweeper purges stale intake and transcript files. It is best-effort: every
// per-file failure is logged and skipped, and a sweep never aborts the
// pipeline run that triggered it.
type Sweeper struct {
	dirs       []string
	maxFileAge time.Duration
	logger     *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewSweeper constructs a Sweeper over the given directories
func NewSweeper(dirs []string, maxFileAge time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		dirs:       dirs,
		maxFileAge: maxFileAge,
		logger:     logger,
		now:        time.Now,
	}
}

// Sweep removes regular files older than the retention threshold. Directories
// are never touched. Returns the number of files removed.
func (s *Sweeper) Sweep() int {
	removed := 0
	cutoff := s.now().Add(-s.maxFileAge)

	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if s.logger != nil && !os.IsNotExist(err) {
				s.logger.Warn("retention sweep: cannot read directory",
					zap.String("dir", dir),
					zap.Error(err),
				)
			}
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			info, err := entry.Info()
			if err != nil {
				// File may have been removed by a concurrent sweep.
				if s.logger != nil {
					s.logger.Warn("retention sweep: cannot stat file",
						zap.String("path", path),
						zap.Error(err),
					)
				}
				continue
			}

			if info.ModTime().After(cutoff) {
				continue
			}

			if err := os.Remove(path); err != nil {
				if s.logger != nil {
					s.logger.Warn("retention sweep: cannot remove file",
						zap.String("path", path),
						zap.Error(err),
					)
				}
				continue
			}

			removed++
			if s.logger != nil {
				s.logger.Info("retention sweep: deleted old file",
					zap.String("path", path),
					zap.Time("mod_time", info.ModTime()),
				)
			}
		}
	}

	return removed
}
