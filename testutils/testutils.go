// Package testutils provides utilities for testing Pashmak scripts in Go,
// including a YAML scenario format for whole-program runs.
package testutils

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/EhsanAmirahmadi/pashmak"
)

// A Scenario is one scripted interpreter run: in-memory source files, the
// entry file, stdin content, and either the exact expected output or the
// expected error kind.
type Scenario struct {
	Name      string            `yaml:"name"`
	Files     map[string]string `yaml:"files"`
	Entry     string            `yaml:"entry"`
	Stdin     string            `yaml:"stdin"`
	Output    string            `yaml:"output"`
	Error     string            `yaml:"error"`
	StackSize int               `yaml:"stack_size"`
}

// Load reads a YAML file holding a list of scenarios.
func Load(t *testing.T, path string) []Scenario {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read scenarios: %v", err)
	}
	var scs []Scenario
	if err := yaml.Unmarshal(b, &scs); err != nil {
		t.Fatalf("could not parse %s: %v", path, err)
	}
	return scs
}

// Run executes the scenario and checks its expectation. Scenarios expecting
// an error must produce no output, since every error class here surfaces
// either before execution or at the failing statement.
func (s Scenario) Run(t *testing.T) {
	t.Helper()
	out := &bytes.Buffer{}
	opts := []pashmak.Option{
		pashmak.WithLoader(pashmak.MapLoader(s.Files)),
		pashmak.WithInput(strings.NewReader(s.Stdin)),
		pashmak.WithOutput(out),
	}
	if s.StackSize > 0 {
		opts = append(opts, pashmak.WithStackSize(s.StackSize))
	}
	p := pashmak.NewProgram(opts...)
	err := p.LoadFile(s.Entry)
	if err == nil {
		err = p.Run()
	}
	if s.Error != "" {
		kind, ok := pashmak.ErrorKind(err)
		if !ok || kind.String() != s.Error {
			t.Fatalf("want a %s, got %v", s.Error, err)
		}
		if out.Len() != 0 {
			t.Errorf("error scenario produced output %q", out.String())
		}
		return
	}
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if got := out.String(); got != s.Output {
		t.Errorf("wrong output:\ngot  %q\nwant %q", got, s.Output)
	}
}
