package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/exitCodes"
	"github.com/RobsonDevCode/depcheckdocx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportHeader = "DependencyName,CVSSv3_BaseSeverity,CVSSv2_Severity,CVE,Vulnerability\n"

type workspace struct {
	input  string
	output string
	config string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	root := t.TempDir()
	ws := workspace{
		input:  filepath.Join(root, "owasp"),
		output: filepath.Join(root, "output"),
		config: filepath.Join(root, "configuration.yaml"),
	}
	require.NoError(t, os.MkdirAll(ws.input, 0755))
	return ws
}

func (ws workspace) addReport(t *testing.T, name string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.input, name), []byte(content), 0600))
}

func (ws workspace) args(extra ...string) []string {
	return append([]string{"--config", ws.config, "--input", ws.input, "--output", ws.output}, extra...)
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := Execute(context.Background(), args, &out)
	return code, out.String()
}

func TestExecute_ConvertsReports(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "lodash.csv", reportHeader+"lodash,HIGH,,CVE-2021-23337,Prototype pollution\n")
	ws.addReport(t, "jquery.csv", reportHeader+"jquery,,MEDIUM,CVE-2020-11023,XSS via .html()\n")

	code, out := run(t, ws.args()...)

	assert.Equal(t, exitCodes.Success, code, out)
	assert.Contains(t, out, "Found OWASP report file")
	assert.Contains(t, out, "falling back to v2")
	assert.Contains(t, out, "run_id=")
	assert.Contains(t, out, "Converted 2 of 2 reports")

	document := testutil.ReadDocument(t, filepath.Join(ws.output, "jquery.docx"))
	assert.Equal(t, []string{"jquery", "MEDIUM", "CVE-2020-11023", "XSS via .html()"}, document.Rows[1])
}

func TestExecute_FailedReportExitsWithOne(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "good.csv", reportHeader+"lodash,HIGH,,CVE-1,x\n")
	ws.addReport(t, "bad.csv", "DependencyName,CVE\nlodash,CVE-1\n")

	code, out := run(t, ws.args()...)

	assert.Equal(t, exitCodes.ReportsFailed, code, out)
	assert.FileExists(t, filepath.Join(ws.output, "good.docx"))
	assert.NoFileExists(t, filepath.Join(ws.output, "bad.docx"))
	assert.Contains(t, out, "Failed To Convert")
}

func TestExecute_SkipRowPolicyFlag(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "short.csv", reportHeader+"lodash,HIGH,,CVE-1,x\njquery,HIGH\n")

	code, out := run(t, ws.args("--row-policy", "skip-row")...)

	assert.Equal(t, exitCodes.Success, code, out)
	document := testutil.ReadDocument(t, filepath.Join(ws.output, "short.docx"))
	assert.Len(t, document.Rows, 2)
}

func TestExecute_MissingInputDirectory(t *testing.T) {
	ws := newWorkspace(t)

	code, out := run(t, "--config", ws.config, "--input", filepath.Join(ws.input, "missing"), "--output", ws.output)

	assert.Equal(t, exitCodes.ConfigError, code)
	assert.Contains(t, out, "input directory does not exist")
}

func TestExecute_InvalidFlagValues(t *testing.T) {
	ws := newWorkspace(t)

	code, _ := run(t, ws.args("--row-policy", "ignore")...)
	assert.Equal(t, exitCodes.ConfigError, code)

	code, _ = run(t, ws.args("--workers", "0")...)
	assert.Equal(t, exitCodes.ConfigError, code)

	code, _ = run(t, ws.args("--no-such-flag")...)
	assert.Equal(t, exitCodes.ConfigError, code)
}

func TestExecute_OutputWriteFailureExitsWithThree(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "lodash.csv", reportHeader+"lodash,HIGH,,CVE-1,x\n")
	// a file where the output directory should be
	require.NoError(t, os.WriteFile(ws.output, []byte("not a directory"), 0600))

	code, out := run(t, ws.args()...)

	assert.Equal(t, exitCodes.OutputFailure, code, out)
}

func TestExecute_EnvironmentOverridesConfigFile(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "lodash.csv", reportHeader+"lodash,HIGH,,CVE-1,x\n")
	require.NoError(t, os.WriteFile(ws.config, []byte("input_directory: /nowhere\noutput_directory: /nowhere\n"), 0600))

	t.Setenv("DEPCHECKDOCX_INPUT", ws.input)
	t.Setenv("DEPCHECKDOCX_OUTPUT", ws.output)
	t.Setenv("DEPCHECKDOCX_LOG_LEVEL", "error")

	code, out := run(t, "--config", ws.config)

	assert.Equal(t, exitCodes.Success, code, out)
	assert.FileExists(t, filepath.Join(ws.output, "lodash.docx"))
	assert.NotContains(t, out, "Found OWASP report file")
}

func TestExecute_ConfigFileIsUsed(t *testing.T) {
	ws := newWorkspace(t)
	ws.addReport(t, "lodash.csv", reportHeader+"lodash,HIGH,,CVE-1,x\n")
	config := "input_directory: " + ws.input + "\noutput_directory: " + ws.output + "\nworkers: 2\n"
	require.NoError(t, os.WriteFile(ws.config, []byte(config), 0600))

	code, out := run(t, "--config", ws.config)

	assert.Equal(t, exitCodes.Success, code, out)
	assert.Contains(t, out, "workers=2")
	assert.FileExists(t, filepath.Join(ws.output, "lodash.docx"))
}

func TestExecute_InvalidConfigFile(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.WriteFile(ws.config, []byte("workers: [not a number\n"), 0600))

	code, _ := run(t, ws.args()...)

	assert.Equal(t, exitCodes.ConfigError, code)
}

func TestSetup_WritesDefaultConfiguration(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join("configuration", "configuration.yaml")

	code, out := run(t, "setup", "--config", path)
	require.Equal(t, exitCodes.Success, code, out)

	config, err := configuration.Load(path)
	require.NoError(t, err)
	assert.Equal(t, configuration.Default().InputDirectory, config.InputDirectory)
	assert.DirExists(t, configuration.DefaultInputDirectory)

	code, _ = run(t, "setup", "--config", path)
	assert.Equal(t, exitCodes.ConfigError, code, "setup must not overwrite an existing configuration")
}

func TestVersion(t *testing.T) {
	code, out := run(t, "version")

	assert.Equal(t, exitCodes.Success, code)
	assert.Equal(t, "depcheckdocx "+Version+"\n", out)
}
