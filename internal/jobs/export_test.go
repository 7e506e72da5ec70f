// SPDX-License-Identifier: MIT
package jobs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/ipwww-iptv/internal/epg"
)

func TestExportWritesAllFiles(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_one_london"] = twoBroadcasts("one")

	agg := NewAggregator(api, epg.Options{})
	agg.Clock = clock
	sel := Selection{TV: []string{"bbc_one_hd"}, Radio: []string{"bbc_radio_two"}, Autoplay: true}

	dir := filepath.Join(t.TempDir(), "out")
	err := Export(context.Background(), dir, agg.BuildStreams(sel), agg.BuildGuide(context.Background(), sel), agg.Channels(sel))
	require.NoError(t, err)

	for _, name := range []string{StreamsFile, GuideFile, PlaylistFile, XMLTVFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, GuideFile))
	require.NoError(t, err)
	var doc struct {
		Version int                    `json:"version"`
		EPG     map[string][]epg.Entry `json:"epg"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.EPG["ipwww.bbc_one_hd"], 2)
	assert.Contains(t, doc.EPG, "ipwww.bbc_radio_two")

	m3u, err := os.ReadFile(filepath.Join(dir, PlaylistFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(m3u), "#EXTM3U"))
	assert.Contains(t, string(m3u), "mode=203")

	xmltv, err := os.ReadFile(filepath.Join(dir, XMLTVFile))
	require.NoError(t, err)
	assert.Contains(t, string(xmltv), `channel="ipwww.bbc_one_hd"`)
}

func TestExportReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, StreamsFile)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	agg := NewAggregator(newFakeAPI(), epg.Options{})
	require.NoError(t, Export(context.Background(), dir, agg.BuildStreams(Selection{}), nil, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"streams":[]}`, string(raw))
}
