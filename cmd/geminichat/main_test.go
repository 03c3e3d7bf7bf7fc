package main

import (
	"bytes"
	"testing"

	"github.com/bhavuklabs/geminiclient/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleHeading(t *testing.T) {
	assert.Equal(t, "User:", roleHeading("user"))
	assert.Equal(t, "Model:", roleHeading("model"))
	assert.Equal(t, "Error:", roleHeading("error"))
}

func TestFirstCandidateText(t *testing.T) {
	empty := gemini.MapResponseBody(`{}`)
	assert.Empty(t, firstCandidateText(empty))

	body := gemini.MapResponseBody(`{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`)
	assert.Equal(t, "ab", firstCandidateText(body))
}

func TestConfigPaths(t *testing.T) {
	assert.Equal(t, []string{"/explicit"}, configPaths("/explicit"))

	paths := configPaths("")
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "v0.0.0")
}
