// Package shell runs the external shader replay tool.
package shell

import (
	"context"
	"errors"
	"io/fs"
	osexec "os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jmgilman/go/exec"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/zerr"
)

// fozExt is the extension of Fossilize pipeline databases.
const fozExt = ".foz"

// stderrTail bounds how much tool output is attached to a failure.
const stderrTail = 512

// Invoker implements ports.ReplayInvoker on top of fossilize-replay.
type Invoker struct {
	base     exec.Executor
	binary   string
	threads  int
	logger   ports.Logger
	lookPath func(string) (string, error)
}

// NewInvoker creates an Invoker. Every invocation runs on a clone of base.
func NewInvoker(base exec.Executor, settings domain.PrewarmSettings, logger ports.Logger) *Invoker {
	binary := settings.Binary
	if binary == "" {
		binary = domain.ReplayBinary
	}
	threads := settings.Threads
	if threads < 1 {
		threads = 1
	}
	return &Invoker{
		base:     base,
		binary:   binary,
		threads:  threads,
		logger:   logger,
		lookPath: osexec.LookPath,
	}
}

// Available reports whether the replay binary can be found.
func (i *Invoker) Available() bool {
	_, err := i.lookPath(i.binary)
	return err == nil
}

// Invoke replays every pipeline database of the unit at unitPath.
func (i *Invoker) Invoke(ctx context.Context, unitPath string) error {
	dbs, err := databases(unitPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list pipeline databases"), "path", unitPath)
	}
	if len(dbs) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrPrewarmFailed, "no pipeline databases in cache unit"), "path", unitPath)
	}

	args := append([]string{i.binary, "--num-threads", strconv.Itoa(i.threads)}, dbs...)
	res, err := i.base.Clone().WithContext(ctx).Run(args...)
	if res != nil && i.logger != nil {
		for line := range strings.Lines(res.Combined) {
			if line = strings.TrimSpace(line); line != "" {
				i.logger.Debug(line)
			}
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		code := -1
		var execErr *exec.ExecError
		if errors.As(err, &execErr) {
			code = execErr.ExitCode
		}
		wrapped := zerr.With(zerr.Wrap(err, "replay command failed"), "exit_code", code)
		if execErr != nil && execErr.Stderr != "" {
			wrapped = zerr.With(wrapped, "stderr", tail(execErr.Stderr))
		}
		return wrapped
	}
	return nil
}

// databases returns the sorted .foz files below unitPath. A unit that is
// itself a database yields just that file.
func databases(unitPath string) ([]string, error) {
	if filepath.Ext(unitPath) == fozExt {
		return []string{unitPath}, nil
	}
	var out []string
	err := filepath.WalkDir(unitPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(path) == fozExt {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTail {
		return s
	}
	return s[len(s)-stderrTail:]
}
