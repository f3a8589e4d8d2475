// Package host exposes the handful of operating-system facts the CLI
// reports. These are deliberately thin, opaque probes over stdlib
// facilities; nothing here shells out or touches platform APIs
// directly.
package host

import (
	"os"
	"runtime"
	"strconv"

	"github.com/davine-io/mellow/internal/tui"
)

// probedEnvVars are reported when present. The Windows ones matter for
// diagnosing which shell and architecture legacy tools will see.
var probedEnvVars = []string{
	"ComSpec",
	"windir",
	"SystemRoot",
	"PROCESSOR_ARCHITECTURE",
	"PROCESSOR_ARCHITEW6432",
	"SHELL",
	"TERM",
}

// Info is a snapshot of the host environment.
type Info struct {
	OS          string
	Arch        string
	ProcessBits int
	OSBits      int
	Env         map[string]string
	Interactive bool
}

// Collect gathers the host snapshot. It never fails; absent facts are
// simply omitted from Env.
func Collect() Info {
	env := make(map[string]string)
	for _, name := range probedEnvVars {
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return Info{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		ProcessBits: strconv.IntSize,
		OSBits:      osBits(),
		Env:         env,
		Interactive: tui.IsInteractive(),
	}
}

// osBits infers the operating system word size. A 64-bit process
// implies a 64-bit OS; a 32-bit process on Windows may still run under
// WOW64, which the PROCESSOR_ARCHITEW6432 variable reveals.
func osBits() int {
	if strconv.IntSize == 64 {
		return 64
	}
	if runtime.GOOS == "windows" && os.Getenv("PROCESSOR_ARCHITEW6432") != "" {
		return 64
	}
	return 32
}
