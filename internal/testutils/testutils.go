// Package testutils holds helpers shared by command tests.
package testutils

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns everything it wrote to stdout.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var out []byte
	var readErr error
	go func() {
		out, readErr = io.ReadAll(r)
		close(done)
	}()

	fn()

	os.Stdout = orig
	if err := w.Close(); err != nil {
		return "", err
	}
	<-done
	if readErr != nil {
		return "", readErr
	}
	return string(out), nil
}

// RunCLITest runs the command with args, failing the test on error.
func RunCLITest(t *testing.T, cmd *cli.Command, args []string) {
	t.Helper()
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// RunCLITestErr runs the command with args and returns the error.
func RunCLITestErr(t *testing.T, cmd *cli.Command, args []string) error {
	t.Helper()
	return cmd.Run(context.Background(), args)
}

// BuildCLIForTests wraps subcommands in a bare root command so flag
// lookup through the lineage behaves as in production.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "mellow",
		Commands: commands,
	}
}

// Chdir switches the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}
