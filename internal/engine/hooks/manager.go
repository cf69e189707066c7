package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/irahardianto/thedot/internal/engine/git"
	"github.com/irahardianto/thedot/internal/platform/logger"
)

// State describes what occupies a hook slot.
type State string

const (
	StateInstalled     State = "installed"
	StateDiffers       State = "installed-but-differs-from-current"
	StateAbsent        State = "absent"
	StateBackupPresent State = "backup-present"
)

// Action is what an install or uninstall did to a hook slot.
type Action string

const (
	ActionInstalled Action = "installed"
	ActionUnchanged Action = "unchanged"
	ActionUpdated   Action = "updated"
	ActionBackedUp  Action = "installed-with-backup"
	ActionRemoved   Action = "removed"
	ActionRestored  Action = "restored-backup"
	ActionAbsent    Action = "absent"
	ActionSkipped   Action = "skipped-foreign"
	ActionFailed    Action = "failed"
)

// Result reports the outcome for one hook.
type Result struct {
	Hook   string `json:"hook"`
	Path   string `json:"path"`
	Action Action `json:"action"`
	Backup string `json:"backup,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Status reports the state of one hook slot.
type Status struct {
	Hook    string `json:"hook"`
	Path    string `json:"path"`
	State   State  `json:"state"`
	Managed bool   `json:"managed"`
	Backup  bool   `json:"backup"`
}

// Manager installs, removes and inspects the managed hooks of one repository.
// The hooks directory is looked up once and reused.
type Manager struct {
	git git.Service

	mu  sync.Mutex
	dir string
}

// NewManager creates a Manager for the repository found by svc.
func NewManager(svc git.Service) *Manager {
	return &Manager{git: svc}
}

// HooksDir returns <git dir>/hooks, or git.ErrNotRepository.
func (m *Manager) HooksDir(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dir != "" {
		return m.dir, nil
	}
	gitDir, ok := m.git.GitDir(ctx)
	if !ok {
		return "", git.ErrNotRepository
	}
	m.dir = filepath.Join(gitDir, "hooks")
	return m.dir, nil
}

// Install writes every managed hook. A foreign hook is moved to <name>.backup first,
// replacing any older backup. Installing identical content is a no-op.
// Every hook is attempted; per-hook failures are reported in the results and
// returned together.
func (m *Manager) Install(ctx context.Context) ([]Result, error) {
	log := logger.FromContext(ctx)

	dir, err := m.HooksDir(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating hooks directory: %w", err)
	}

	var merr *multierror.Error
	results := make([]Result, 0, len(Names))
	for _, name := range Names {
		res, err := installOne(filepath.Join(dir, name), name)
		if err != nil {
			res.Action = ActionFailed
			res.Error = err.Error()
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, err))
			log.Warn("hook install failed", "hook", name, "error", err)
		} else {
			log.Info("hook install", "hook", name, "action", res.Action)
		}
		results = append(results, res)
	}

	return results, merr.ErrorOrNil()
}

func installOne(path, name string) (Result, error) {
	res := Result{Hook: name, Path: path}

	want, err := RenderShim(name)
	if err != nil {
		return res, err
	}

	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Action = ActionInstalled
	case err != nil:
		return res, fmt.Errorf("inspecting hook: %w", err)
	case info.Mode().IsRegular():
		have, err := os.ReadFile(path) // #nosec G304 -- path is constructed from the git dir
		if err != nil {
			return res, fmt.Errorf("reading hook: %w", err)
		}
		if bytes.Equal(have, want) {
			res.Action = ActionUnchanged
			if info.Mode().Perm()&0o100 == 0 {
				if err := os.Chmod(path, 0o755); err != nil { // #nosec G302 -- hook must be executable
					return res, fmt.Errorf("marking hook executable: %w", err)
				}
			}
			return res, nil
		}
		if isManaged(have) {
			res.Action = ActionUpdated
			break
		}
		if err := backup(path); err != nil {
			return res, err
		}
		res.Action, res.Backup = ActionBackedUp, path+BackupSuffix
	default:
		// Symlinks and other non-regular entries are always moved aside.
		if err := backup(path); err != nil {
			return res, err
		}
		res.Action, res.Backup = ActionBackedUp, path+BackupSuffix
	}

	if err := writeHook(path, want); err != nil {
		return res, err
	}
	return res, nil
}

func backup(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("backing up existing hook: %w", err)
	}
	return nil
}

func writeHook(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o755); err != nil { // #nosec G306 -- hook must be executable
		return fmt.Errorf("writing hook script: %w", err)
	}
	if err := os.Chmod(path, 0o755); err != nil { // #nosec G302 -- hook must be executable
		return fmt.Errorf("marking hook executable: %w", err)
	}
	return nil
}

// Uninstall removes every dot-managed hook and restores <name>.backup into a freed slot.
// A hook that dot did not write is left in place.
func (m *Manager) Uninstall(ctx context.Context) ([]Result, error) {
	log := logger.FromContext(ctx)

	dir, err := m.HooksDir(ctx)
	if err != nil {
		return nil, err
	}

	var merr *multierror.Error
	results := make([]Result, 0, len(Names))
	for _, name := range Names {
		res, err := uninstallOne(filepath.Join(dir, name), name)
		if err != nil {
			res.Action = ActionFailed
			res.Error = err.Error()
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, err))
			log.Warn("hook uninstall failed", "hook", name, "error", err)
		} else {
			log.Info("hook uninstall", "hook", name, "action", res.Action)
		}
		results = append(results, res)
	}

	return results, merr.ErrorOrNil()
}

func uninstallOne(path, name string) (Result, error) {
	res := Result{Hook: name, Path: path, Action: ActionAbsent}

	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return res, fmt.Errorf("inspecting hook: %w", err)
	default:
		managed := false
		if info.Mode().IsRegular() {
			have, err := os.ReadFile(path) // #nosec G304 -- path is constructed from the git dir
			if err != nil {
				return res, fmt.Errorf("reading hook: %w", err)
			}
			managed = isManaged(have)
		}
		if !managed {
			res.Action = ActionSkipped
			return res, nil
		}
		if err := os.Remove(path); err != nil {
			return res, fmt.Errorf("removing hook: %w", err)
		}
		res.Action = ActionRemoved
	}

	bak := path + BackupSuffix
	binfo, err := os.Lstat(bak)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("inspecting backup: %w", err)
	}
	if err := os.Rename(bak, path); err != nil {
		return res, fmt.Errorf("restoring backup: %w", err)
	}
	if binfo.Mode().IsRegular() {
		if err := os.Chmod(path, 0o755); err != nil { // #nosec G302 -- hook must be executable
			return res, fmt.Errorf("marking restored hook executable: %w", err)
		}
	}
	res.Action, res.Backup = ActionRestored, bak
	return res, nil
}

// Status inspects every managed hook slot.
func (m *Manager) Status(ctx context.Context) ([]Status, error) {
	dir, err := m.HooksDir(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(Names))
	for _, name := range Names {
		st, err := statusOne(filepath.Join(dir, name), name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func statusOne(path, name string) (Status, error) {
	st := Status{Hook: name, Path: path, State: StateAbsent}

	if _, err := os.Lstat(path + BackupSuffix); err == nil {
		st.Backup = true
	}

	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if st.Backup {
			st.State = StateBackupPresent
		}
		return st, nil
	case err != nil:
		return st, fmt.Errorf("inspecting hook: %w", err)
	}

	st.State = StateDiffers
	if !info.Mode().IsRegular() {
		return st, nil
	}

	have, err := os.ReadFile(path) // #nosec G304 -- path is constructed from the git dir
	if err != nil {
		return st, fmt.Errorf("reading hook: %w", err)
	}
	st.Managed = isManaged(have)

	want, err := RenderShim(name)
	if err != nil {
		return st, err
	}
	if bytes.Equal(have, want) {
		st.State = StateInstalled
	}
	return st, nil
}
