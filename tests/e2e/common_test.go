package e2e

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildBinary builds the mdfmt binary in dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "mdfmt.exe")
	// Tests run from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/mdfmt")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build mdfmt: %v\n%s", err, string(out))
	}
	return bin
}

// runCmd runs the binary in dir and returns its stdout and exit error.
func runCmd(t *testing.T, dir string, name string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("%s %v: %v\n%s", name, args, err, stderr.String())
	}
	return stdout.String(), err
}
