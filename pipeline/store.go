package pipeline

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Store persists run artifacts (training matrices, model files) under one
// directory. Writes go through a per-artifact lock file so concurrent runs
// over the same store never interleave partial writes, and land atomically
// via a temporary file rename.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) an artifact store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "pipeline: creating store dir %q", dir)
	}
	return &Store{dir: dir}, nil
}

// Path returns the absolute path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes data as the named artifact. The write happens to name+".tmp"
// under the artifact's lock and is then renamed into place, so readers only
// ever observe complete artifacts.
func (s *Store) Save(name string, data []byte) error {
	target := s.Path(name)
	return s.withLock(name, func() error {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return errors.Wrapf(err, "pipeline: writing %q", tmp)
		}
		if err := os.Rename(tmp, target); err != nil {
			return errors.Wrapf(err, "pipeline: moving %q to %q", tmp, target)
		}
		return nil
	})
}

// Load reads the named artifact.
func (s *Store) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline: reading artifact %q", name)
	}
	return data, nil
}

// withLock runs fn while holding the artifact's lock file, polling with a 1
// to 2 second period when another process holds it.
func (s *Store) withLock(name string, fn func() error) error {
	lockPath := s.Path(name) + ".lock"
	lock := flock.New(lockPath)
	for {
		locked, err := lock.TryLock()
		if err != nil {
			return errors.Wrapf(err, "pipeline: locking %q", lockPath)
		}
		if locked {
			break
		}
		klog.V(1).Infof("Artifact %s locked by another process, waiting.", name)
		time.Sleep(time.Second + time.Duration(rand.Int63n(int64(time.Second))))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			klog.Errorf("Failed unlocking %q: %v", lockPath, err)
		}
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			klog.V(1).Infof("Could not remove lock file %q: %v", lockPath, err)
		}
	}()
	return fn()
}
