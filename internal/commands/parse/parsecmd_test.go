package parse

import (
	"strings"
	"testing"

	"github.com/davine-io/mellow/internal/printer"
	"github.com/davine-io/mellow/internal/testutils"
	"github.com/urfave/cli/v3"
)

func buildCLI() *cli.Command {
	return testutils.BuildCLIForTests([]*cli.Command{Run()})
}

func TestParseCommand_Human(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "clean version",
			input: "1.2.3.4",
			want:  []string{"status: ok", "version: 1.2.3.4"},
		},
		{
			name:  "revision failure with leftover",
			input: "1.2.3.4-beta3",
			want:  []string{"status: revision-failed", "version: 1.2.3.4", "leftover revision: beta3"},
		},
		{
			name:  "excess segments",
			input: "1.2.3.4.5",
			want:  []string{"status: ok-excess", "leftover excess: 5"},
		},
		{
			name:  "trailing dot yields empty excess",
			input: "1.2.3.4.",
			want:  []string{"status: ok-excess", "leftover excess:"},
		},
		{
			name:  "malformed",
			input: "garbage",
			want:  []string{"status: malformed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, buildCLI(), []string{"mellow", "parse", tt.input})
			})
			if err != nil {
				t.Fatalf("failed to capture stdout: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestParseCommand_JSON(t *testing.T) {
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, buildCLI(), []string{"mellow", "parse", "--json", "1.2.3.4-beta3"})
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	want := `{"input":"1.2.3.4-beta3","status":"revision-failed","code":4,` +
		`"version":{"major":1,"minor":2,"build":3,"revision":4,"string":"1.2.3.4"},` +
		`"leftover":["","","","beta3",""]}` + "\n"
	if output != want {
		t.Errorf("JSON output = %s, want %s", output, want)
	}
}

func TestParseCommand_JSONMalformed(t *testing.T) {
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, buildCLI(), []string{"mellow", "parse", "--json", "junk"})
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	for _, want := range []string{`"status":"malformed"`, `"code":-1`, `"major":-1`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestParseCommand_RequiresArgument(t *testing.T) {
	if err := testutils.RunCLITestErr(t, buildCLI(), []string{"mellow", "parse"}); err == nil {
		t.Fatal("expected error for missing argument")
	}
	if err := testutils.RunCLITestErr(t, buildCLI(), []string{"mellow", "parse", "a", "b"}); err == nil {
		t.Fatal("expected error for extra arguments")
	}
}
