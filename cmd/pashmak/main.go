// Command pashmak runs Pashmak scripts.
//
// Usage:
//
//	pashmak <script.pashm>
//
// With no argument, the entry script is taken from a pashmak.yaml project
// manifest in the current directory, or, when stdin is not a terminal, the
// script itself is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/EhsanAmirahmadi/pashmak"
)

// manifest is the pashmak.yaml project file.
type manifest struct {
	Name      string `yaml:"name"`
	Entry     string `yaml:"entry"`
	StackSize int    `yaml:"stack_size"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts []pashmak.Option
	var entry string
	if len(args) > 0 {
		entry = args[0]
	} else {
		m, err := loadManifest("pashmak.yaml")
		switch {
		case err == nil:
			entry = m.Entry
			if m.StackSize > 0 {
				opts = append(opts, pashmak.WithStackSize(m.StackSize))
			}
		case !os.IsNotExist(err):
			fmt.Fprintln(os.Stderr, "pashmak:", err)
			return 1
		}
	}

	p := pashmak.NewProgram(opts...)
	switch {
	case entry != "":
		if err := p.LoadFile(entry); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case !term.IsTerminal(int(os.Stdin.Fd())):
		// Piped invocation: the script arrives on stdin.
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pashmak: reading stdin:", err)
			return 1
		}
		if err := p.LoadString(string(src), "<stdin>"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: pashmak <script.pashm>")
		return 2
	}

	if err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var m manifest
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if m.Entry == "" {
		return nil, fmt.Errorf("%s: manifest has no entry", path)
	}
	return &m, nil
}
