package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Exec renders by running an external Graphviz program. The DOT text is
// written to the program's stdin and the artifact read from its stdout.
//
// There is no built-in timeout: a stalled program blocks Render until ctx is
// cancelled.
type Exec struct {
	// Args are extra command-line arguments appended after -T.
	Args []string
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

var _ Renderer = (*Exec)(nil)

func (x *Exec) logger() *log.Logger {
	if x.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return x.Logger
}

// Render implements Renderer.
func (x *Exec) Render(ctx context.Context, req Request) ([]byte, error) {
	if err := CheckFormat(req.Format); err != nil {
		return nil, err
	}
	if req.Format == FormatRaw {
		return bytes.Clone(req.Text), nil
	}

	path, err := resolveExecutable(req.Program)
	if err != nil {
		return nil, err
	}

	args := []string{"-T" + req.Format}
	if req.Charset != "" {
		args = append(args, "-Gcharset="+req.Charset)
	}
	args = append(args, x.Args...)

	cmd := exec.CommandContext(ctx, path, args...)
	if len(req.ShapeFiles) > 0 {
		dir, err := stageFiles(req.ShapeFiles)
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
		cmd.Dir = dir
	}

	// With non-*os.File writers exec copies both pipes concurrently, so a
	// full stderr pipe cannot stall the program while stdout is drained.
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(req.Text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger := x.logger()
	logger.Debug("running renderer", "program", path, "args", args, "bytes", len(req.Text))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &InvocationError{
				Program:  path,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
				Cause:    err,
			}
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, exec.ErrNotFound) {
			return nil, &NotFoundError{Program: req.Program, Cause: err}
		}
		return nil, &InvocationError{Program: path, ExitCode: -1, Stderr: stderr.String(), Cause: err}
	}
	if stderr.Len() > 0 {
		return nil, &InvocationError{Program: path, Stderr: stderr.String()}
	}

	logger.Debug("renderer finished", "program", path, "bytes", stdout.Len())
	return stdout.Bytes(), nil
}

// resolveExecutable checks that program names a runnable file. Bare names
// are looked up in $PATH; paths may be wrapped in double quotes.
func resolveExecutable(program string) (string, error) {
	p := strings.TrimSpace(program)
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		p = p[1 : len(p)-1]
	}
	if p == "" {
		return "", &NotFoundError{Program: program}
	}

	if !strings.ContainsRune(p, filepath.Separator) && !strings.ContainsRune(p, '/') {
		found, err := exec.LookPath(p)
		if err != nil {
			return "", &NotFoundError{Program: program, Cause: err}
		}
		return found, nil
	}

	fi, err := os.Stat(p)
	if err != nil {
		return "", &NotFoundError{Program: program, Cause: err}
	}
	if fi.IsDir() {
		return "", &NotFoundError{Program: program, Cause: errors.New("is a directory")}
	}
	if runtime.GOOS != "windows" && fi.Mode().Perm()&0o111 == 0 {
		return "", &NotFoundError{Program: program, Cause: errors.New("not executable")}
	}
	return p, nil
}

// stageFiles copies files into a fresh temporary directory so the program
// can find them by base name.
func stageFiles(files []string) (string, error) {
	dir, err := os.MkdirTemp("", "dotgraph-")
	if err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	for _, f := range files {
		if err := copyFile(f, filepath.Join(dir, filepath.Base(f))); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("staging %s: %w", f, err)
		}
	}
	return dir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
