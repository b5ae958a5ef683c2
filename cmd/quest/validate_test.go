package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioquest/internal/config"
)

func TestBuildReport_DefaultDocuments(t *testing.T) {
	report := buildReport("", "", "telescope")
	require.True(t, report.Valid, "findings: %+v", report.Errors)
	assert.Empty(t, report.Warnings)

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "INFO")
	assert.Contains(t, out.String(), "valid")
	assert.NotContains(t, out.String(), "ERRORS")
}

func TestBuildReport_MissingNavigationFile(t *testing.T) {
	report := buildReport(filepath.Join(t.TempDir(), "missing.json"), "", "telescope")
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "ERRORS (1):")
	assert.Contains(t, out.String(), "invalid")
}

func TestBuildReport_MissingContentSkipsContentChecks(t *testing.T) {
	report := buildReport("", filepath.Join(t.TempDir(), "cv.json"), "telescope")
	assert.True(t, report.Valid)
	require.NotEmpty(t, report.Warnings)
	assert.Equal(t, "content", report.Warnings[len(report.Warnings)-1].Path)
}

func TestValidateCmd_ReturnsErrInvalid(t *testing.T) {
	cfg := config.Config{NavigationFile: filepath.Join(t.TempDir(), "missing.json")}
	cmd := validateCmd(&cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out.String(), `"valid": false`)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quest.log")
	log, closer, err := newLogger(config.Config{LogFile: path, LogLevel: "info"}, os.Stderr)
	require.NoError(t, err)
	log.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestLogFailure(t *testing.T) {
	var out bytes.Buffer
	logFailure(&out, errors.New("config missing"))
	assert.Contains(t, out.String(), "quest failed")
	assert.Contains(t, out.String(), "config missing")
}
