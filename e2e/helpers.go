package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildCodedistBinary builds the codedist CLI into a temp directory
func buildCodedistBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "codedist")

	// Build from the project root (one level up from the e2e directory)
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/codedist")
	cmd.Dir = projectRoot(t)

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build codedist binary: %v\n%s", err, output)
	}

	return binaryPath
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	return root
}

// testdataPath resolves a path under the repository testdata directory
func testdataPath(t *testing.T, elem ...string) string {
	t.Helper()
	return filepath.Join(append([]string{projectRoot(t), "testdata"}, elem...)...)
}

// runCodedist runs the binary in dir and returns stdout, stderr and the exit code
func runCodedist(t *testing.T, binaryPath, dir, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Failed to run codedist: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), exitCode
}

func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return filePath
}
