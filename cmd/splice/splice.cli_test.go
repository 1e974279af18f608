package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test data constants
const (
	testFilePerm = 0o600
	testDate     = "2026-10-18T09:00:00Z"

	testRichRecipe = `
variant: rich
steps:
  - literal: "Hello "
  - handler: message
    args: ["Red", !color red]
`
	testTextRecipe = `
steps:
  - literal: "Hi, I'm "
  - handler: format
    args: [38, !number_style spellout]
`
	testFailingRecipe = `
steps:
  - handler: nope
`
	testInvalidRecipe = "variant: fancy\n"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), testFilePerm))
	return path
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	res := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, res.code)
	assert.Contains(t, res.stdout, CLIName)
	assert.Contains(t, res.stdout, CmdNameRender)
	assert.Contains(t, res.stdout, CmdNameDemo)
}

func TestRun_UnknownCommand(t *testing.T) {
	res := runCLI(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, res.code)
	assert.NotEmpty(t, res.stderr)
}

func TestRun_UnknownFlag(t *testing.T) {
	res := runCLI(t, "", CmdNameDemo, "--nope")

	assert.Equal(t, ExitCodeUsageError, res.code)
}

// ==================== demo ====================

func TestDemo(t *testing.T) {
	res := runCLI(t, "", CmdNameDemo, "--"+FlagDate, testDate)

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, DemoIntro+"thirty-eight.")
	assert.Contains(t, res.stdout, "October 18, 2026")
	assert.Contains(t, res.stdout, "@"+DemoTwitter)
	assert.Contains(t, res.stdout, "Malcolm")
	assert.Contains(t, res.stdout, DemoRocks+DemoRocksLiteral)
	assert.Contains(t, res.stdout, "Haters gonna hate hate hate hate hate")
	assert.Contains(t, res.stdout, DemoSectionRich+"\nRed White Blue\n")
	assert.Empty(t, res.stderr)
}

func TestDemo_HTML(t *testing.T) {
	res := runCLI(t, "", CmdNameDemo, "--"+FlagDate, testDate, "-"+FlagFormatShort, OutputFormatHTML)

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "color: red")
	assert.Contains(t, res.stdout, ">Blue</span>")
}

func TestDemo_Verbose(t *testing.T) {
	res := runCLI(t, "", CmdNameDemo, "--"+FlagDate, testDate, "-"+FlagVerboseShort)

	require.Equal(t, ExitCodeSuccess, res.code)
	assert.NotEmpty(t, res.stderr)
}

func TestDemo_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"date", []string{"--" + FlagDate, "yesterday"}, ErrMsgInvalidDate},
		{"format", []string{"--" + FlagFormat, "pdf"}, ErrMsgInvalidFormat},
		{"policy", []string{"--" + FlagPolicy, "lenient"}, ErrMsgInvalidPolicy},
		{"locale", []string{"--" + FlagLocale, "not a locale"}, ErrMsgInvalidLocale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", append([]string{CmdNameDemo}, tt.args...)...)

			assert.Equal(t, ExitCodeUsageError, res.code)
			assert.Contains(t, res.stderr, tt.msg)
		})
	}
}

func TestDemo_Locale(t *testing.T) {
	res := runCLI(t, "", CmdNameDemo, "--"+FlagDate, testDate, "--"+FlagLocale, "de-DE")

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, DemoIntro+DemoPeriod, "spell-out is skipped outside English")
	assert.NotContains(t, res.stdout, "thirty-eight")
}

// ==================== render ====================

func TestRender_File(t *testing.T) {
	path := writeRecipe(t, testTextRecipe)

	res := runCLI(t, "", CmdNameRender, "-"+FlagFileShort, path)

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Equal(t, "Hi, I'm thirty-eight\n", res.stdout)
}

func TestRender_Stdin(t *testing.T) {
	res := runCLI(t, testRichRecipe, CmdNameRender, "-"+FlagFileShort, InputSourceStdin)

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Equal(t, "Hello Red\n", res.stdout)
}

func TestRender_Formats(t *testing.T) {
	path := writeRecipe(t, testRichRecipe)

	t.Run("json", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRender, "-"+FlagFileShort, path, "--"+FlagFormat, OutputFormatJSON)
		require.Equal(t, ExitCodeSuccess, res.code, res.stderr)

		var doc struct {
			Runs []struct {
				Text  string            `json:"text"`
				Style map[string]string `json:"style"`
			} `json:"runs"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
		require.Len(t, doc.Runs, 2)
		assert.Equal(t, "Red", doc.Runs[1].Text)
		assert.Equal(t, "red", doc.Runs[1].Style["color"])
	})

	t.Run("ansi", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRender, "-"+FlagFileShort, path, "--"+FlagFormat, OutputFormatANSI)
		require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "\x1b[")
		assert.Contains(t, res.stdout, "Red")
	})

	t.Run("table", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRender, "-"+FlagFileShort, path, "--"+FlagFormat, OutputFormatTable)
		require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "color=red")
	})
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing file flag", nil, ExitCodeUsageError, ErrMsgMissingRecipe},
		{"missing file", []string{"-" + FlagFileShort, filepath.Join(t.TempDir(), "absent.yaml")}, ExitCodeInputError, ErrMsgReadFileFailed},
		{"invalid recipe", []string{"-" + FlagFileShort, writeRecipe(t, testInvalidRecipe)}, ExitCodeInputError, ErrMsgLoadRecipeFailed},
		{"unresolved handler", []string{"-" + FlagFileShort, writeRecipe(t, testFailingRecipe)}, ExitCodeRenderError, ErrMsgRenderFailed},
		{"bad format", []string{"-" + FlagFileShort, writeRecipe(t, testTextRecipe), "--" + FlagFormat, "pdf"}, ExitCodeUsageError, ErrMsgInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", append([]string{CmdNameRender}, tt.args...)...)

			assert.Equal(t, tt.code, res.code)
			assert.Contains(t, res.stderr, tt.msg)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRender_CollectPolicy(t *testing.T) {
	path := writeRecipe(t, "steps:\n  - handler: nope\n  - literal: ok\n  - handler: nope\n")

	res := runCLI(t, "", CmdNameRender, "-"+FlagFileShort, path, "--"+FlagPolicy, "collect")

	assert.Equal(t, ExitCodeRenderError, res.code)
	assert.Contains(t, res.stderr, ErrMsgRenderFailed)
	assert.Empty(t, res.stdout)
}

// ==================== recipes ====================

func TestRecipes_SaveListRenderDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	path := writeRecipe(t, testTextRecipe)

	res := runCLI(t, "", CmdNameRecipes, CmdNameSave, "intro", "-"+FlagFileShort, path, "--"+FlagDir, dir)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)

	res = runCLI(t, testRichRecipe, CmdNameRecipes, CmdNameSave, "colors", "-"+FlagFileShort, InputSourceStdin, "-"+FlagDirShort, dir)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)

	res = runCLI(t, "", CmdNameRecipes, CmdNameList, "--"+FlagDir, dir)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Equal(t, "colors\nintro\n", res.stdout)

	res = runCLI(t, "", CmdNameRender, "intro", "--"+FlagDir, dir)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Equal(t, "Hi, I'm thirty-eight\n", res.stdout)

	res = runCLI(t, "", CmdNameRecipes, CmdNameDelete, "intro", "--"+FlagDir, dir)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)

	res = runCLI(t, "", CmdNameRender, "intro", "--"+FlagDir, dir)
	assert.Equal(t, ExitCodeInputError, res.code)
	assert.Contains(t, res.stderr, ErrMsgLoadRecipeFailed)
}

func TestRecipes_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("save invalid recipe", func(t *testing.T) {
		res := runCLI(t, testInvalidRecipe, CmdNameRecipes, CmdNameSave, "bad", "-"+FlagFileShort, InputSourceStdin, "--"+FlagDir, dir)
		assert.Equal(t, ExitCodeInputError, res.code)
	})

	t.Run("save without file", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRecipes, CmdNameSave, "x", "--"+FlagDir, dir)
		assert.Equal(t, ExitCodeUsageError, res.code)
	})

	t.Run("save unsafe name", func(t *testing.T) {
		res := runCLI(t, testTextRecipe, CmdNameRecipes, CmdNameSave, "../x", "-"+FlagFileShort, InputSourceStdin, "--"+FlagDir, dir)
		assert.Equal(t, ExitCodeInputError, res.code)
	})

	t.Run("delete missing", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRecipes, CmdNameDelete, "absent", "--"+FlagDir, dir)
		assert.Equal(t, ExitCodeInputError, res.code)
	})

	t.Run("render with file and name", func(t *testing.T) {
		res := runCLI(t, "", CmdNameRender, "x", "-"+FlagFileShort, writeRecipe(t, testTextRecipe), "--"+FlagDir, dir)
		assert.Equal(t, ExitCodeUsageError, res.code)
		assert.Contains(t, res.stderr, ErrMsgFileAndName)
	})
}

// ==================== handlers ====================

func TestHandlers_Table(t *testing.T) {
	res := runCLI(t, "", CmdNameHandlers)

	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "format")
	assert.Contains(t, res.stdout, "message")
}

func TestHandlers_JSON(t *testing.T) {
	res := runCLI(t, "", CmdNameHandlers, "--"+FlagFormat, OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, res.code, res.stderr)

	var infos []struct {
		Name    string `json:"name"`
		Variant string `json:"variant"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &infos))
	require.NotEmpty(t, infos)

	names := make(map[string]bool)
	for _, info := range infos {
		names[info.Name] = true
	}
	for _, name := range []string{"format", "date", "twitter", "join", "if", "subject", "debug", "yaml", "message"} {
		assert.True(t, names[name], name)
	}
}

func TestHandlers_InvalidFormat(t *testing.T) {
	res := runCLI(t, "", CmdNameHandlers, "--"+FlagFormat, OutputFormatHTML)

	assert.Equal(t, ExitCodeUsageError, res.code)
	assert.Contains(t, res.stderr, ErrMsgInvalidFormat)
}

// ==================== version ====================

func TestVersion(t *testing.T) {
	res := runCLI(t, "", CmdNameVersion)

	require.Equal(t, ExitCodeSuccess, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, CLIName+" "))
	assert.Contains(t, res.stdout, "go: ")
}

func TestVersion_JSON(t *testing.T) {
	old := version
	version = "v1.2.3"
	t.Cleanup(func() { version = old })

	res := runCLI(t, "", CmdNameVersion, "--"+FlagFormat, OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, res.code)

	var v versionOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &v))
	assert.Equal(t, "v1.2.3", v.Version)
	assert.NotEmpty(t, v.GoVersion)
}
