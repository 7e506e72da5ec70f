// SPDX-License-Identifier: MIT
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/ipwww-iptv/internal/catalog"
	"github.com/ManuGH/ipwww-iptv/internal/epg"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/playlist"
)

// Export file names inside the output directory.
const (
	StreamsFile  = "streams.json"
	GuideFile    = "epg.json"
	PlaylistFile = "playlist.m3u"
	XMLTVFile    = "xmltv.xml"
)

// Export writes the stream list and guide to dir as JSON, M3U and XMLTV.
// Each file is replaced atomically.
func Export(ctx context.Context, dir string, streams playlist.Document, guide epg.Guide, channels []catalog.Channel) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{StreamsFile, func(w io.Writer) error { return writeJSON(w, streams) }},
		{GuideFile, func(w io.Writer) error { return writeJSON(w, epg.NewDocument(guide)) }},
		{PlaylistFile, func(w io.Writer) error { return playlist.WriteM3U(w, streams.Streams) }},
		{XMLTVFile, func(w io.Writer) error { return epg.WriteXMLTV(w, guide, channels) }},
	}
	for _, f := range writers {
		if err := writeAtomic(ctx, filepath.Join(dir, f.name), f.write); err != nil {
			return err
		}
	}
	return nil
}

// writeAtomic writes through a pending file that is fsynced and renamed
// over path only when write succeeds.
func writeAtomic(ctx context.Context, path string, write func(io.Writer) error) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str(xglog.FieldPath, path).Msg("cleanup pending file")
		}
	}()

	if err := write(pendingFile); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", filepath.Base(path), err)
	}

	logger.Debug().Str(xglog.FieldEvent, "export.file_written").Str(xglog.FieldPath, path).Msg("file written")
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
