// Package discover locates Graphviz executables once, producing the
// program name to path map consumed by dot.Graph.SetPrograms.
//
// Discovery touches the filesystem and the environment; the dot and
// dotparser packages never do.
package discover

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Names are the Graphviz programs looked for.
var Names = []string{"dot", "twopi", "neato", "circo", "fdp", "sfdp"}

// ErrNoPrograms is returned when no program could be found.
var ErrNoPrograms = errors.New("no graphviz programs found")

// Programs maps a program name to its executable path.
type Programs map[string]string

// Sorted returns the program names in lexical order.
func (p Programs) Sorted() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Find looks for every program in dirs, first match wins. Surrounding
// whitespace is trimmed from each directory; a directory wrapped in double
// quotes yields quoted paths.
func Find(dirs ...string) (Programs, error) {
	found := make(Programs)
	for _, dir := range dirs {
		lookIn(found, dir)
	}
	if len(found) == 0 {
		return nil, ErrNoPrograms
	}
	return found, nil
}

// FindInPath looks for every program in $PATH.
func FindInPath() (Programs, error) {
	found := make(Programs)
	for _, name := range Names {
		if p, err := exec.LookPath(name); err == nil {
			found[name] = p
		}
	}
	if len(found) == 0 {
		return nil, ErrNoPrograms
	}
	return found, nil
}

// Discover searches dirs, then $PATH for whatever is still missing.
func Discover(dirs ...string) (Programs, error) {
	found := make(Programs)
	for _, dir := range dirs {
		lookIn(found, dir)
	}
	if fromPath, err := FindInPath(); err == nil {
		for name, p := range fromPath {
			if _, ok := found[name]; !ok {
				found[name] = p
			}
		}
	}
	if len(found) == 0 {
		return nil, ErrNoPrograms
	}
	return found, nil
}

func lookIn(found Programs, dir string) {
	dir = strings.TrimSpace(dir)
	quoted := len(dir) >= 2 && dir[0] == '"' && dir[len(dir)-1] == '"'
	if quoted {
		dir = dir[1 : len(dir)-1]
	}
	if dir == "" {
		return
	}
	for _, name := range Names {
		if _, ok := found[name]; ok {
			continue
		}
		for _, candidate := range candidates(name) {
			p := filepath.Join(dir, candidate)
			fi, err := os.Stat(p)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			if quoted {
				p = `"` + p + `"`
			}
			found[name] = p
			break
		}
	}
}

func candidates(name string) []string {
	return candidatesFor(name, runtime.GOOS, inConda())
}

// candidatesFor lists the file names tried for a program. Anaconda installs
// Graphviz on Windows behind .bat wrappers, so those win there.
func candidatesFor(name, goos string, conda bool) []string {
	switch {
	case goos != "windows":
		return []string{name}
	case conda:
		return []string{name + ".bat", name + ".exe", name}
	default:
		return []string{name + ".exe", name + ".bat", name}
	}
}

// inConda reports whether the process runs inside an Anaconda environment.
func inConda() bool {
	return os.Getenv("CONDA_PREFIX") != ""
}

type programsFile struct {
	Programs map[string]string `toml:"programs"`
}

// LoadFile reads a TOML file with a [programs] table:
//
//	[programs]
//	dot = "/opt/graphviz/bin/dot"
func LoadFile(path string) (Programs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading programs file: %w", err)
	}
	var f programsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing programs file %s: %w", path, err)
	}
	if len(f.Programs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPrograms)
	}
	return Programs(f.Programs), nil
}
