package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/itsatony/go-mxp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test data constants
const (
	testDocument  = `Exits: <SEND>north</SEND> and <SEND "tell Zugg " PROMPT>Zugg</SEND>.`
	testEntityDoc = `<SEND href="say I am &charName;">TAG CONTENT</SEND>`
)

func init() {
	color.NoColor = true
}

// runCLI executes the CLI with the given stdin and returns exit code and output
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameRender)
	assert.Contains(t, stdout, CmdNameParse)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "explode")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "", CmdNameRender, "--bogus")
	assert.Equal(t, ExitCodeUsageError, code)
}

func TestRun_InvalidOutputFormat(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameVersion, "-o", "xml")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

// ==================== render tests ====================

func TestRender_TextFromStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, testDocument, CmdNameRender)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "send([[north]])  north", lines[0])
	assert.Equal(t, "printCmdLine([[tell Zugg ]])  tell Zugg ", lines[1])
	assert.Contains(t, stderr, "2 links")
}

func TestRender_JSONWithEntityFlag(t *testing.T) {
	code, stdout, stderr := runCLI(t, testEntityDoc, CmdNameRender, "-e", "charName=Gandalf", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, stderr)

	var out renderOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []mxp.LinkRecord{{Action: "send([[say I am Gandalf]])", Hint: "say I am Gandalf"}}, out.Links)
	assert.Equal(t, 1, out.Stats.Links)
	assert.True(t, strings.HasPrefix(out.SessionID, mxp.SessionIDPrefix))
}

func TestRender_YAMLFromFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "room.txt")
	require.NoError(t, os.WriteFile(docPath, []byte(testEntityDoc), 0o600))
	cfgPath := filepath.Join(dir, "mxp.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("session_id = \"conn-1\"\n[entities]\ncharName = \"Frodo\"\n"), 0o600))

	code, stdout, stderr := runCLI(t, "", CmdNameRender, "-f", docPath, "--config", cfgPath, "-o", "yaml")
	require.Equal(t, ExitCodeSuccess, code, stderr)

	var out renderOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "conn-1", out.SessionID)
	require.Len(t, out.Links, 1)
	assert.Equal(t, "say I am Frodo", out.Links[0].Hint)
}

func TestRender_EntityFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mxp.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("entities:\n  charName: Frodo\n"), 0o600))

	code, stdout, _ := runCLI(t, testEntityDoc, CmdNameRender, "-c", cfgPath, "-e", "charName=Sam", "--no-color")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "send([[say I am Sam]])")
}

func TestRender_UnterminatedSpanWarns(t *testing.T) {
	code, stdout, stderr := runCLI(t, "<SEND>north", CmdNameRender)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Warning:")
	assert.Contains(t, stderr, "1 unterminated")
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	badCfg := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badCfg, []byte("nested_policy: stack\n"), 0o600))

	tests := []struct {
		name     string
		args     []string
		exitCode int
		errMsg   string
	}{
		{name: "missing file", args: []string{"-f", filepath.Join(dir, "nope.txt")}, exitCode: ExitCodeInputError, errMsg: ErrMsgReadFileFailed},
		{name: "missing config", args: []string{"-c", filepath.Join(dir, "nope.yaml")}, exitCode: ExitCodeInputError, errMsg: ErrMsgLoadConfigFailed},
		{name: "invalid config", args: []string{"-c", badCfg}, exitCode: ExitCodeInputError, errMsg: ErrMsgLoadConfigFailed},
		{name: "entity without value", args: []string{"-e", "charName"}, exitCode: ExitCodeUsageError, errMsg: ErrMsgInvalidEntityFlag},
		{name: "entity bad name", args: []string{"-e", "bad name=x"}, exitCode: ExitCodeUsageError, errMsg: ErrMsgInvalidEntityFlag},
		{name: "entity reserved name", args: []string{"-e", "text=x"}, exitCode: ExitCodeUsageError, errMsg: ErrMsgInvalidEntityFlag},
		{name: "positional args", args: []string{"extra"}, exitCode: ExitCodeUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", append([]string{CmdNameRender}, tt.args...)...)
			assert.Equal(t, tt.exitCode, code)
			if tt.errMsg != "" {
				assert.Contains(t, stderr, tt.errMsg)
			}
		})
	}
}

// ==================== parse tests ====================

func TestParse_Text(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameParse, `<SEND "tell Zugg " href=x PROMPT>`)

	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, `<SEND "tell Zugg " href="x" PROMPT>`)
	assert.Contains(t, stdout, `[0] "tell Zugg "`)
	assert.Contains(t, stdout, `href = "x"`)
	assert.Contains(t, stdout, "  PROMPT\n")
}

func TestParse_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameParse, "</send>", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code)

	var out tagOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "send", out.Name)
	assert.True(t, out.End)
	assert.Empty(t, out.Attributes)
}

func TestParse_Errors(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameParse, `<SEND "open`)
	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgParseFailed)

	code, _, _ = runCLI(t, "", CmdNameParse)
	assert.Equal(t, ExitCodeUsageError, code)
}

// ==================== version tests ====================

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)
	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, Version)

	code, stdout, _ = runCLI(t, "", CmdNameVersion, "-o", "json")
	require.Equal(t, ExitCodeSuccess, code)
	var out versionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.NotEmpty(t, out.GoVersion)
}
