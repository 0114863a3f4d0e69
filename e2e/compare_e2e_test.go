package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCompareE2EText tests the text report
func TestCompareE2EText(t *testing.T) {
	binaryPath := buildCodedistBinary(t)

	stdout, stderr, code := runCodedist(t, binaryPath, t.TempDir(), "",
		"compare", testdataPath(t, "java", "loop_before.java"), testdataPath(t, "java", "guard_after.java"))
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	for _, want := range []string{"Tree edit distance", "New identifiers", "Similarity", "Strategy"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output should contain %q\n%s", want, stdout)
		}
	}
}

// TestCompareE2EJSONOutput tests the JSON report written to a file
func TestCompareE2EJSONOutput(t *testing.T) {
	binaryPath := buildCodedistBinary(t)
	outputPath := filepath.Join(t.TempDir(), "reports", "compare.json")

	_, stderr, code := runCodedist(t, binaryPath, t.TempDir(), "",
		"compare", "--format", "json", "--details", "-o", outputPath,
		testdataPath(t, "java", "loop_before.java"), testdataPath(t, "java", "loop_after.java"))
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Report not written: %v", err)
	}

	var report struct {
		TreeEditDistance   int     `json:"tree_edit_distance"`
		NewIdentifierCount int     `json:"new_identifier_count"`
		Similarity         float64 `json:"similarity"`
		NewIdentifiers     []struct {
			Spelling string `json:"spelling"`
			Nearest  string `json:"nearest"`
		} `json:"new_identifiers"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Invalid JSON report: %v\n%s", err, data)
	}

	if report.TreeEditDistance != 0 || report.NewIdentifierCount != 1 || report.Similarity != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}
	if len(report.NewIdentifiers) != 1 || report.NewIdentifiers[0].Spelling != "j" || report.NewIdentifiers[0].Nearest != "i" {
		t.Errorf("Expected j replacing i, got %+v", report.NewIdentifiers)
	}
}

// TestCompareE2EConfigFile tests that init output drives later comparisons
func TestCompareE2EConfigFile(t *testing.T) {
	binaryPath := buildCodedistBinary(t)
	dir := t.TempDir()

	if _, stderr, code := runCodedist(t, binaryPath, dir, "", "init", "--language", "python"); code != 0 {
		t.Fatalf("init failed with exit code %d\nStderr: %s", code, stderr)
	}

	before := createTestFile(t, dir, "before.py", "x = compute(1)\n")
	after := createTestFile(t, dir, "after.py", "y = compute(2)\n")

	stdout, stderr, code := runCodedist(t, binaryPath, dir, "", "compare", "-f", "yaml", before, after)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "tree_edit_distance: 0") {
		t.Errorf("Expected distance 0 with the python grammar\n%s", stdout)
	}
	if !strings.Contains(stdout, "grammar.toml") {
		t.Errorf("Expected the generated grammar descriptor to be used\n%s", stdout)
	}
}
