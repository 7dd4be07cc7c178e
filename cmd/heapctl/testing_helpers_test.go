package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fixheap/internal/config"
)

// resetFlags restores global flag and config state between tests
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	cfg = config.Default()
	demoCapacity = 0
	createCapacity = 0
	createForce = false
	dumpFreeOnly = false
}

// newHeapFile creates a heap file with the given capacity and returns its path
func newHeapFile(t *testing.T, capacity int) string {
	t.Helper()
	resetFlags()
	path := filepath.Join(t.TempDir(), "heap.bin")
	createCapacity = capacity
	_, err := captureOutput(t, func() error { return runCreate([]string{path}) })
	require.NoError(t, err)
	resetFlags()
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and decodes it into v
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
