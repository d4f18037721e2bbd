/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package entry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/nativ/config"
	"bennypowers.dev/nativ/resolver"
	"bennypowers.dev/nativ/testutil"
)

func TestResolveEntry_BrowserRemap(t *testing.T) {
	store, mfs := testutil.NewStore(t, "/ws", map[string]string{
		"node_modules/pkg/package.json": `{
			"name": "pkg",
			"main": "./lib/index.js",
			"browser": {"./lib/index.js": "./lib/index.browser.js"}
		}`,
	})

	pkg, ok := store.Load("/ws/node_modules/pkg")
	require.True(t, ok)

	ctx := resolver.NewDefaultContext(mfs, store, (&config.Config{}).ExportsResolver())
	ctx.MainFields = []string{"browser", "main"}

	got := resolveEntry(ctx, pkg, "./node_modules/pkg", "")
	assert.Equal(t, "pkg", got.Name)
	assert.Equal(t, "./lib/index.browser.js", got.Entry)
	assert.Equal(t, "/ws/node_modules/pkg/lib/index.browser.js", got.Path)
}

func TestResolveEntry_ExportsWins(t *testing.T) {
	store, mfs := testutil.NewStore(t, "/ws", map[string]string{
		"node_modules/modern/package.json": `{
			"name": "modern",
			"main": "./index.cjs",
			"exports": {".": {"browser": "./dist/web.mjs", "default": "./dist/node.mjs"}}
		}`,
		"node_modules/modern/dist/web.mjs": "export {}\n",
	})

	pkg, ok := store.Load("/ws/node_modules/modern")
	require.True(t, ok)

	ctx := resolver.NewDefaultContext(mfs, store, (&config.Config{}).ExportsResolver())
	ctx.PackageExports = true

	got := resolveEntry(ctx, pkg, "modern", "web")
	assert.Equal(t, "./dist/web.mjs", got.Entry)
	assert.Equal(t, "/ws/node_modules/modern/dist/web.mjs", got.Path)
}

func TestResolveEntry_DefaultIndex(t *testing.T) {
	store, mfs := testutil.NewStore(t, "/ws", map[string]string{
		"vendor/anon/package.json": `{}`,
	})

	pkg, ok := store.Load("/ws/vendor/anon")
	require.True(t, ok)

	ctx := resolver.NewDefaultContext(mfs, store, (&config.Config{}).ExportsResolver())

	got := resolveEntry(ctx, pkg, "./vendor/anon", "")
	assert.Equal(t, "index", got.Entry)
	assert.Equal(t, "/ws/vendor/anon/index", got.Path)
}

func TestOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	results := []result{
		{Package: "./node_modules/pkg", Name: "pkg", Entry: "./index.js", Path: "/ws/node_modules/pkg/index.js"},
		{Package: "./vendor/anon", Entry: "index", Path: "/ws/vendor/anon/index"},
	}
	require.NoError(t, output(&buf, results, "text"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "pkg")
	assert.Contains(t, lines[0], "/ws/node_modules/pkg/index.js")
	// Anonymous packages fall back to the argument.
	assert.Contains(t, lines[1], "./vendor/anon")
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	results := []result{
		{Package: "./p", Name: "n", Entry: "./e.js", Path: "/p/e.js"},
	}
	require.NoError(t, output(&buf, results, "json"))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "./e.js", decoded[0]["entry"])
	assert.Equal(t, "/p/e.js", decoded[0]["path"])
}
