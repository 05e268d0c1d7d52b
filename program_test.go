package mussel

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type programCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
}

// Test_Programs_From_Fixtures runs every scenario in testdata/programs.yaml
// through the whole pipeline and checks the program's stdout, or the runtime
// error it is required to fail with.
func Test_Programs_From_Fixtures(t *testing.T) {
	data, err := os.ReadFile("testdata/programs.yaml")
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var cases []programCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			var out bytes.Buffer
			ip := NewInterpreter()
			ip.Stdout = &out

			runErr := ip.Run(compile(t, c.Source))
			if c.Error != "" {
				if runErr == nil {
					t.Fatalf("program succeeded, want error containing %q", c.Error)
				}
				if !strings.Contains(runErr.Error(), c.Error) {
					t.Fatalf("error = %q, want it to contain %q", runErr, c.Error)
				}
				return
			}
			if runErr != nil {
				t.Fatalf("run error: %v", runErr)
			}
			if got := out.String(); got != c.Stdout {
				t.Fatalf("stdout = %q, want %q", got, c.Stdout)
			}
		})
	}
}
