package initialize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davine-io/mellow/internal/printer"
	"github.com/davine-io/mellow/internal/testutils"
	"github.com/urfave/cli/v3"
)

func buildCLI() *cli.Command {
	return testutils.BuildCLIForTests([]*cli.Command{Run()})
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	path := filepath.Join(t.TempDir(), ".mellow.yaml")

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, buildCLI(), []string{"mellow", "init", "--path", path})
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if !strings.Contains(output, "created") {
		t.Errorf("output = %q, want creation notice", output)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "comment-markers") {
		t.Errorf("unexpected config contents: %s", data)
	}
}

func TestInit_ExistingFileNeedsForce(t *testing.T) {
	// Test stdout is a pipe, so the command cannot prompt and must
	// refuse without --force.
	path := filepath.Join(t.TempDir(), ".mellow.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := testutils.RunCLITestErr(t, buildCLI(), []string{"mellow", "init", "--path", path})
	if err == nil {
		t.Fatal("expected error for existing config without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}

	// The original file is untouched.
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "format: yaml") {
		t.Errorf("existing config was modified: %s", data)
	}
}

func TestInit_ForceOverwrites(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	path := filepath.Join(t.TempDir(), ".mellow.yaml")
	if err := os.WriteFile(path, []byte("old: config\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, buildCLI(), []string{"mellow", "init", "--path", path, "--force"})
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "old: config") {
		t.Errorf("config not overwritten: %s", data)
	}
}
