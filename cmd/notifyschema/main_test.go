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

	"github.com/sumire/notifyschema/internal/domain"
	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/service"
)

// runCLI executes the root command. Commands share package-level flag
// variables, so tests in this file do not run in parallel.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	validateKind = string(schema.KindNotificationAndroidOptions)
	validateIgnoreUnknown = false
	describeJSON = false
	tokenSubject = ""

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCmd_JSONFile(t *testing.T) {
	path := writeFile(t, "n.json", `{"channelId": "chat", "smallIcon": ["ic", 2]}`)

	stdout, _, err := runCLI(t, "", "validate", path)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "chat", out["channelId"])
	assert.Equal(t, true, out["autoCancel"])
	assert.Equal(t, []any{"ic", float64(2)}, out["smallIcon"])
}

func TestValidateCmd_YAMLFile(t *testing.T) {
	path := writeFile(t, "n.yaml", `
channelId: chat
lights: [red, 300, 600]
contentInfo:
  1: first
`)

	stdout, stderr, err := runCLI(t, "", "validate", path)
	require.NoError(t, err, stderr)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []any{"red", float64(300), float64(600)}, out["lights"])
	assert.Equal(t, map[string]any{"1": "first"}, out["contentInfo"])
}

func TestValidateCmd_Stdin(t *testing.T) {
	stdout, _, err := runCLI(t, `{"channelGroupId": "g", "name": "G"}`, "validate", "--kind", "channel-group")
	require.NoError(t, err)
	assert.JSONEq(t, `{"channelGroupId": "g", "name": "G"}`, stdout)
}

func TestValidateCmd_ViolationsFail(t *testing.T) {
	path := writeFile(t, "bad.json", `{"priority": 7, "progress": {"max": 1, "current": 3}}`)

	stdout, _, err := runCLI(t, "", "validate", path)
	require.ErrorIs(t, err, errViolations)

	assert.Contains(t, stdout, path+": 2 violation(s)")
	assert.Contains(t, stdout, "priority: value is not a member of AndroidPriority [invalid_enum_value]")
	assert.Contains(t, stdout, `actual="7"`)
	assert.Contains(t, stdout, "rule=progress-ordering")
	assert.Contains(t, stdout, `expected="max > current unless indeterminate"`)
}

func TestValidateCmd_SharedChannelTracker(t *testing.T) {
	first := writeFile(t, "first.json", `{"channelId": "alerts", "name": "Alerts", "importance": 4}`)
	second := writeFile(t, "second.yaml", "channelId: alerts\nname: Alerts\nimportance: 2\n")

	stdout, _, err := runCLI(t, "", "validate", "--kind", "channel", first, second)
	require.ErrorIs(t, err, errViolations)

	assert.Contains(t, stdout, `"channelId": "alerts"`)
	assert.Contains(t, stdout, second+": 1 violation(s)")
	assert.Contains(t, stdout, "[immutable_field_conflict]")
	assert.Contains(t, stdout, `expected="4" actual="2"`)
}

func TestValidateCmd_IgnoreUnknown(t *testing.T) {
	path := writeFile(t, "c.json", `{"channelId": "c", "name": "C", "colour": "red"}`)

	_, _, err := runCLI(t, "", "validate", "--kind", "channel", path)
	require.ErrorIs(t, err, errViolations)

	stdout, _, err := runCLI(t, "", "validate", "--kind", "channel", "--ignore-unknown", path)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "colour")
}

func TestValidateCmd_KeepsGoingAfterBadFile(t *testing.T) {
	broken := writeFile(t, "broken.json", `{"channelId":`)
	good := writeFile(t, "good.json", `{"channelId": "chat"}`)

	stdout, stderr, err := runCLI(t, "", "validate", broken, good)
	require.ErrorIs(t, err, errViolations)
	assert.Contains(t, stderr, broken)
	assert.Contains(t, stdout, `"channelId": "chat"`)
}

func TestValidateCmd_UnknownKind(t *testing.T) {
	path := writeFile(t, "n.json", `{}`)

	_, _, err := runCLI(t, "", "validate", "--kind", "ios-options", path)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestDescribeCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "", "describe")
	require.NoError(t, err)
	assert.Equal(t, len(schema.Default().Kinds()), strings.Count(stdout, "\n"))
	assert.Contains(t, stdout, "channel-group\n")

	stdout, _, err = runCLI(t, "", "describe", "channel")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FIELD")
	assert.Contains(t, stdout, "AndroidImportance")

	stdout, _, err = runCLI(t, "", "describe", "--json", "style")
	require.NoError(t, err)
	var table struct {
		Kind          string `json:"kind"`
		Discriminator string `json:"discriminator"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &table))
	assert.Equal(t, "style", table.Kind)
	assert.Equal(t, "type", table.Discriminator)

	_, _, err = runCLI(t, "", "describe", "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	stdout, _, err := runCLI(t, "", "token", "--subject", "ci")
	require.NoError(t, err)

	subject, err := service.NewTokenService("0123456789abcdef0123456789abcdef", 0).ValidateToken(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "ci", subject)
}
