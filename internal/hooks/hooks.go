// Package hooks runs user scripts when a scan is accepted.
//
// Scripts live in {hooks_dir}/{point}/ and run in name order. Only files with
// an executable bit are considered. Each script receives the scan in
// BARSCAN_* environment variables; its output goes to the log.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/logging"
)

// PointScan runs after a value was accepted and added to history.
const PointScan = "on-scan"

// Failure modes.
const (
	FailureAbort  = "abort"
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

// ErrHookFailed wraps the failure of a single script.
var ErrHookFailed = errors.New("hook failed")

// Settings configure a Runner.
type Settings struct {
	Enabled     bool
	Dir         string
	FailureMode string
	Async       bool
	Timeout     time.Duration
	MaxAsync    int
	Logger      logging.Logger
}

// SettingsFromConfig reads the hooks_* keys. An empty hooks_dir means
// {config_dir}/hooks.
func SettingsFromConfig() Settings {
	dir := config.Get("hooks_dir", "")
	if dir == "" {
		dir = filepath.Join(config.Get("config_dir", ""), "hooks")
	}
	return Settings{
		Enabled:     config.GetBool("hooks_enabled", true),
		Dir:         dir,
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Async:       config.GetBool("hooks_async", false),
		Timeout:     config.GetDuration("hooks_timeout", 30*time.Second),
		MaxAsync:    config.GetInt("hooks_max_async", 10),
	}
}

// Runner executes hook scripts. The zero value is not usable; call New.
type Runner struct {
	settings Settings
	logger   logging.Logger
	slots    chan struct{}
	pending  sync.WaitGroup
}

// New returns a runner. A nil runner is valid and runs nothing.
func New(s Settings) *Runner {
	if s.Logger == nil {
		s.Logger = logging.Nop()
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MaxAsync <= 0 {
		s.MaxAsync = 10
	}
	switch s.FailureMode {
	case FailureAbort, FailureWarn, FailureIgnore:
	default:
		s.FailureMode = FailureWarn
	}
	return &Runner{
		settings: s,
		logger:   s.Logger.With("component", "hooks"),
		slots:    make(chan struct{}, s.MaxAsync),
	}
}

// Aborts reports whether a failing hook should stop the caller.
func (r *Runner) Aborts() bool {
	return r != nil && r.settings.FailureMode == FailureAbort
}

// ScanEnv builds the variables passed to on-scan hooks.
func ScanEnv(text, symbology, source string, id int) map[string]string {
	env := map[string]string{
		"BARSCAN_TEXT":   text,
		"BARSCAN_SOURCE": source,
	}
	if symbology != "" {
		env["BARSCAN_SYMBOLOGY"] = symbology
	}
	if id > 0 {
		env["BARSCAN_HISTORY_ID"] = strconv.Itoa(id)
	}
	return env
}

// Scripts returns the executable scripts of point in run order.
func (r *Runner) Scripts(point string) []string {
	if r == nil || !r.settings.Enabled {
		return nil
	}
	dir := filepath.Join(r.settings.Dir, point)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(dir, f.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes the scripts of point. Synchronous failures are returned
// unless the failure mode is ignore; abort stops at the first failure.
// In async mode Run returns once every script was started.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	r.logger.Debug("running hooks", "point", point, "scripts", len(scripts))

	vars := r.environ(point, env)
	var errs []error
	for _, script := range scripts {
		if r.settings.Async {
			r.start(ctx, script, vars)
			continue
		}
		err := r.exec(ctx, script, vars)
		if err == nil || r.settings.FailureMode == FailureIgnore {
			continue
		}
		if r.settings.FailureMode == FailureAbort {
			return err
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Wait blocks until every async hook finished.
func (r *Runner) Wait() {
	if r == nil {
		return
	}
	r.pending.Wait()
}

func (r *Runner) start(ctx context.Context, script string, vars []string) {
	select {
	case r.slots <- struct{}{}:
	default:
		r.logger.Warn("too many async hooks pending, skipping", "script", filepath.Base(script), "max", r.settings.MaxAsync)
		return
	}
	r.pending.Add(1)
	go func() {
		defer func() {
			<-r.slots
			r.pending.Done()
		}()
		if err := r.exec(context.WithoutCancel(ctx), script, vars); err != nil && r.settings.FailureMode != FailureIgnore {
			r.logger.Warn("async hook failed", "error", err)
		}
	}()
}

func (r *Runner) exec(ctx context.Context, script string, vars []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	name := filepath.Base(script)
	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = vars
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if len(output) > 0 {
		r.logger.Debug("hook output", "script", name, "output", string(output))
	}
	if ctx.Err() == context.DeadlineExceeded {
		r.logger.Warn("hook timed out", "script", name, "timeout", r.settings.Timeout)
	}
	if err != nil {
		r.logger.Warn("hook failed", "script", name, "error", err, "duration", duration)
		return fmt.Errorf("%w: %s: %v", ErrHookFailed, name, err)
	}
	r.logger.Debug("hook completed", "script", name, "duration", duration)
	return nil
}

func (r *Runner) environ(point string, env map[string]string) []string {
	vars := os.Environ()
	vars = append(vars,
		"BARSCAN_HOOK_POINT="+point,
		"BARSCAN_HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		vars = append(vars, "BARSCAN_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vars = append(vars, k+"="+env[k])
	}
	return vars
}
