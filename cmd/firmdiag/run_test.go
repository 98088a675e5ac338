package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/firmdiag/internal/config"
	"github.com/julianshen/firmdiag/internal/extract"
	"github.com/julianshen/firmdiag/internal/output"
)

type project struct {
	root   string
	config string
}

func (p project) path(parts ...string) string {
	return filepath.Join(append([]string{p.root}, parts...)...)
}

// newProject writes a config file whose paths all point into a temp dir.
func newProject(t *testing.T, extra string) project {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	toml := fmt.Sprintf(`
[source]
dir = '%[1]s/src'

[pins]
config_file = '%[1]s/src/config.h'

[output]
flowcharts_dir = '%[1]s/docs/code-diagrams'
advanced_dir = '%[1]s/docs/advanced-diagrams'
wiring_file = '%[1]s/docs/architecture-diagrams/board-wiring.mmd'
static_dir = '%[1]s/_static'

[raster]
pixels_per_unit = 5
%[2]s`, root, extra)
	cfgPath := filepath.Join(root, "firmdiag.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(toml), 0o644))
	return project{root: root, config: cfgPath}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBatchCmdJSONReport(t *testing.T) {
	p := newProject(t, "")
	require.NoError(t, os.WriteFile(p.path("src", "app.cpp"), []byte("void begin() { }\nvoid begin();\n"), 0o644))

	stdout, stderr, err := execute(t, "flowcharts", "--config", p.config, "--report", "json")
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Batches, 1)
	assert.Equal(t, "flowcharts", report.Batches[0].Name)
	assert.Equal(t, 1, report.Batches[0].FilesScanned)
	assert.Equal(t, 2, report.Batches[0].Records)

	assert.Contains(t, stderr, "firmdiag: scanning ")
	_, statErr := os.Stat(p.path("docs", "code-diagrams", "main-flow.md"))
	assert.NoError(t, statErr)
}

func TestRootRunsAllBatchesAndFailsOnMissingPinConfig(t *testing.T) {
	p := newProject(t, "")

	stdout, _, err := execute(t, "--config", p.config)
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrConfigMissing))

	assert.Contains(t, stdout, "flowcharts ok\n")
	assert.Contains(t, stdout, "wiring FAILED\n")
	assert.Contains(t, stdout, "static ok\n")
	for _, f := range []string{
		p.path("docs", "code-diagrams", "README.md"),
		p.path("docs", "advanced-diagrams", "gateway.dot"),
		p.path("_static", "logo.png"),
	} {
		_, statErr := os.Stat(f)
		assert.NoError(t, statErr, f)
	}
}

func TestWiringCmd(t *testing.T) {
	p := newProject(t, "")
	require.NoError(t, os.WriteFile(p.path("src", "config.h"), []byte("#define RFM95_CS 15\n#define RFM95_INT 26\n"), 0o644))

	stdout, _, err := execute(t, "wiring", "--config", p.config, "--report", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "- Pins resolved: 2 of 8")

	data, err := os.ReadFile(p.path("docs", "architecture-diagrams", "board-wiring.mmd"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "CS=15")
	assert.Contains(t, string(data), "INT=26")
}

func TestMetricsTextfile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "metrics", "firmdiag.prom")
	p := newProject(t, fmt.Sprintf("\n[metrics]\ntextfile = '%s'\n", prom))

	_, _, err := execute(t, "advanced", "--config", p.config)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `firmdiag_artifacts_written_total{batch="advanced"} 6`)
}

func TestUnknownReportFormat(t *testing.T) {
	p := newProject(t, "")
	_, _, err := execute(t, "flowcharts", "--config", p.config, "--report", "xml")
	assert.ErrorContains(t, err, `unknown report format "xml"`)
}

func TestInvalidConfigFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[source\n"), 0o644))

	_, _, err := execute(t, "flowcharts", "--config", bad)
	assert.ErrorContains(t, err, "loading config")
}

func TestDocgenConfigMapping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Extensions = []string{".ino"}
	cfg.Pins.Macros = map[string]string{"LORA_CS": "SS"}
	cfg.Raster.Font = "font.ttf"

	d := docgenConfig(cfg, nil)
	assert.Equal(t, "src", d.SourceDir)
	assert.Equal(t, []string{".ino"}, d.Scan.Extensions)
	assert.True(t, d.Scan.RespectGitignore)
	assert.Equal(t, "src/config.h", d.PinConfig)
	assert.Equal(t, "SS", d.PinOverrides["LORA_CS"])
	assert.Equal(t, "font.ttf", d.Font)
	assert.Equal(t, 100.0, d.PixelsPerUnit)
	assert.Equal(t, "_static", d.StaticDir)
}

func TestStrictError(t *testing.T) {
	clean := &output.Report{Batches: []output.BatchReport{{Name: "static", Written: []string{"logo.png"}}}}
	failing := &output.Report{Batches: []output.BatchReport{{Name: "static",
		Failures: []output.Failure{{Path: "logo.png", Error: "disk full"}}}}}

	assert.NoError(t, strictError(failing, false))
	assert.NoError(t, strictError(clean, true))
	assert.EqualError(t, strictError(failing, true), "1 artifacts failed")
}

func TestStrictFlagFailsOnArtifactErrors(t *testing.T) {
	p := newProject(t, "")
	// A regular file where the output directory should be.
	require.NoError(t, os.MkdirAll(p.path("docs"), 0o755))
	require.NoError(t, os.WriteFile(p.path("docs", "code-diagrams"), []byte("x"), 0o644))

	_, _, err := execute(t, "flowcharts", "--config", p.config)
	require.NoError(t, err)

	_, _, err = execute(t, "flowcharts", "--config", p.config, "--strict")
	assert.ErrorContains(t, err, "4 artifacts failed")
}
