package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/tankbeurt-splitter/internal/extractor"
)

func TestReadInputsTextFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("Jan 150"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("Pieter 100"), 0o600))

	text, err := readInputs(&extractor.TesseractProvider{}, []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, "Jan 150\nPieter 100", text)
}

func TestReadInputsMissingFile(t *testing.T) {
	_, err := readInputs(&extractor.TesseractProvider{}, []string{"/tmp/nonexistent-logbook-12345.txt"})
	assert.Error(t, err)
}

func TestRunSplitWritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.csv")

	require.NoError(t, runSplit("A 150\nB 50", 100, path, false, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{"Name,Distance (km),Percentage,Amount", "A,150,75.00,75.00", "B,50,25.00,25.00"}, lines)
}

func TestRunSplitRejectsNegativeAmount(t *testing.T) {
	assert.Error(t, runSplit("A 1", -1, "", false, false))
}
