/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package check

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/nativ/lint"
)

func TestOutput_Text(t *testing.T) {
	issues := []lint.Issue{
		{
			File:       "/ws/pkg/package.json",
			Path:       "main",
			Message:    `"main" is empty and will be skipped`,
			Suggestion: "name an entry file or remove the field",
		},
		{
			File:    "/ws/pkg/package.json",
			Path:    "exports",
			Message: "exports cannot mix subpath and condition keys",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output(&buf, issues, "text"))

	lines := buf.String()
	assert.Contains(t, lines, `/ws/pkg/package.json: main: "main" is empty and will be skipped (name an entry file or remove the field)`)
	assert.Contains(t, lines, "/ws/pkg/package.json: exports: exports cannot mix subpath and condition keys")
	assert.NotContains(t, lines, "no problems found")
}

func TestOutput_TextClean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output(&buf, nil, "text"))

	assert.Equal(t, "no problems found\n", buf.String())
}

func TestOutput_JSON(t *testing.T) {
	issues := []lint.Issue{
		{Path: "browser", Message: `"browser" is null and will be skipped`},
	}

	var buf bytes.Buffer
	require.NoError(t, output(&buf, issues, "json"))

	var decoded []lint.Issue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "browser", decoded[0].Path)
	assert.Empty(t, decoded[0].File)
}

func TestOutput_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output(&buf, nil, "json"))

	assert.Equal(t, "[]\n", buf.String())
}
