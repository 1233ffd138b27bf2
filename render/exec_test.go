package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script standing in for a
// Graphviz program.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "fakedot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

const sampleDOT = "digraph G {\na -> b;\n}\n"

func TestExecPipesTextThroughProgram(t *testing.T) {
	prog := writeScript(t, "cat")

	out, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "svg",
		Program: prog,
	})
	require.NoError(t, err)
	assert.Equal(t, sampleDOT, string(out))
}

func TestExecPassesFormatCharsetAndArgs(t *testing.T) {
	prog := writeScript(t, `echo "$@"`)

	out, err := (&Exec{Args: []string{"-Kneato"}}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "png:cairo",
		Program: prog,
		Charset: "latin1",
	})
	require.NoError(t, err)
	assert.Equal(t, "-Tpng:cairo -Gcharset=latin1 -Kneato\n", string(out))
}

func TestExecNonZeroExit(t *testing.T) {
	prog := writeScript(t, "echo 'syntax error in line 1' >&2\nexit 3")

	_, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "png",
		Program: prog,
	})
	require.Error(t, err)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, 3, invErr.ExitCode)
	assert.Contains(t, invErr.Stderr, "syntax error in line 1")
	assert.Contains(t, err.Error(), "exit code 3")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestExecStderrOnSuccessIsAnError(t *testing.T) {
	prog := writeScript(t, "cat\necho 'Warning: something odd' >&2")

	_, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "svg",
		Program: prog,
	})
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, 0, invErr.ExitCode)
	assert.Contains(t, err.Error(), "Warning: something odd")
}

func TestExecLargeStderrDoesNotBlock(t *testing.T) {
	prog := writeScript(t, "i=0\nwhile [ $i -lt 5000 ]; do echo 'noise noise noise noise noise' >&2; i=$((i+1)); done\ncat")

	_, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(strings.Repeat("x", 1<<17)),
		Format:  "svg",
		Program: prog,
	})
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Greater(t, len(invErr.Stderr), 1<<16)
}

func TestExecProgramNotFound(t *testing.T) {
	tests := []struct {
		name    string
		program string
	}{
		{"bare name not in PATH", "invalid_executable_path"},
		{"missing absolute path", filepath.Join(t.TempDir(), "nope", "dot")},
		{"directory", t.TempDir()},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&Exec{}).Render(context.Background(), Request{
				Text:    []byte(sampleDOT),
				Format:  "png",
				Program: tt.program,
			})
			require.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, out)
		})
	}
}

func TestExecNotExecutableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not checked on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\ncat\n"), 0o644))

	_, err := (&Exec{}).Render(context.Background(), Request{Text: []byte(sampleDOT), Format: "png", Program: path})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExecQuotedProgramPath(t *testing.T) {
	prog := writeScript(t, "cat")

	out, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "svg",
		Program: ` "` + prog + `" `,
	})
	require.NoError(t, err)
	assert.Equal(t, sampleDOT, string(out))
}

func TestExecStagesShapeFiles(t *testing.T) {
	prog := writeScript(t, "ls")

	src := t.TempDir()
	shape := filepath.Join(src, "house.png")
	require.NoError(t, os.WriteFile(shape, []byte("img"), 0o644))

	out, err := (&Exec{}).Render(context.Background(), Request{
		Text:       []byte(sampleDOT),
		Format:     "svg",
		Program:    prog,
		ShapeFiles: []string{shape},
	})
	require.NoError(t, err)
	assert.Equal(t, "house.png\n", string(out))
}

func TestExecMissingShapeFile(t *testing.T) {
	prog := writeScript(t, "cat")

	_, err := (&Exec{}).Render(context.Background(), Request{
		Text:       []byte(sampleDOT),
		Format:     "svg",
		Program:    prog,
		ShapeFiles: []string{filepath.Join(t.TempDir(), "missing.png")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging")
}

func TestExecRawSkipsProgram(t *testing.T) {
	out, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  FormatRaw,
		Program: "invalid_executable_path",
	})
	require.NoError(t, err)
	assert.Equal(t, sampleDOT, string(out))
}

func TestExecUnsupportedFormat(t *testing.T) {
	_, err := (&Exec{}).Render(context.Background(), Request{
		Text:    []byte(sampleDOT),
		Format:  "docx",
		Program: "dot",
	})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExecContextCancellation(t *testing.T) {
	prog := writeScript(t, "sleep 10")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Exec{}).Render(ctx, Request{Text: []byte(sampleDOT), Format: "svg", Program: prog})
	require.Error(t, err)
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"png", "svg", "png:cairo", "plain-ext", "raw", "xdot"} {
		assert.NoError(t, CheckFormat(f), f)
	}
	for _, f := range []string{"", "docx", ":png"} {
		assert.ErrorIs(t, CheckFormat(f), ErrUnsupportedFormat, f)
	}
}

func TestInvocationErrorMessage(t *testing.T) {
	err := &InvocationError{Program: "dot", ExitCode: 1, Stderr: "  bad  \n"}
	assert.Equal(t, "dot failed with exit code 1: bad", err.Error())

	nf := &NotFoundError{Program: "dot"}
	assert.Equal(t, `renderer not found: "dot"`, nf.Error())
}
