// SPDX-License-Identifier: MIT
package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestOpenParsesScalars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, `
iptv.tv_channels: "bbc_one_hd;bbc_two_hd"
iptv.radio_channels: bbc_radio_two
streams_autoplay: true
empty:
number: 42
`)

	s, err := Open(path)
	require.NoError(t, err)

	v, ok := s.Get("iptv.tv_channels")
	assert.True(t, ok)
	assert.Equal(t, "bbc_one_hd;bbc_two_hd", v)
	assert.True(t, s.Bool("streams_autoplay"))

	v, ok = s.Get("empty")
	assert.True(t, ok)
	assert.Empty(t, v)

	v, _ = s.Get("number")
	assert.Equal(t, "42", v)

	_, ok = s.Get("missing")
	assert.False(t, ok)
	assert.False(t, s.Bool("missing"))
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot())
}

func TestOpenRejectsNonScalarValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "iptv.tv_channels:\n  - bbc_one_hd\n")

	_, err := Open(path)
	assert.ErrorContains(t, err, "value must be a scalar")
}

func TestOpenRejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "- a\n- b\n")

	_, err := Open(path)
	assert.ErrorContains(t, err, "top level must be a mapping")
}

func TestReloadKeepsSnapshotOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "streams_autoplay: \"true\"\n")

	s, err := Open(path)
	require.NoError(t, err)

	writeFile(t, path, "streams_autoplay: [unterminated\n")
	assert.Error(t, s.Reload())
	assert.True(t, s.Bool("streams_autoplay"))

	writeFile(t, path, "streams_autoplay: \"false\"\n")
	require.NoError(t, s.Reload())
	assert.False(t, s.Bool("streams_autoplay"))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := FromMap(map[string]string{"a": "1"})
	snap := s.Snapshot()
	snap["a"] = "2"

	v, _ := s.Get("a")
	assert.Equal(t, "1", v)
	assert.NoError(t, s.Reload(), "in-memory reload is a no-op")
}
