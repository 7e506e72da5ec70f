// SPDX-License-Identifier: MIT
package playlist

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

var attrEscaper = strings.NewReplacer(`"`, "'", "\n", " ", "\r", " ")

// WriteM3U renders streams as an extended M3U playlist for players that do
// not speak the IPTV Manager protocol.
func WriteM3U(w io.Writer, streams []Stream) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for i, s := range streams {
		group := "BBC TV"
		radio := ""
		if s.Radio {
			group = "BBC Radio"
			radio = ` radio="true"`
		}
		fmt.Fprintf(buf,
			`#EXTINF:-1 tvg-chno="%d" tvg-id="%s" tvg-logo="%s" group-title="%s"%s,%s`+"\n",
			i+1, attrEscaper.Replace(s.ID), attrEscaper.Replace(s.Logo), group, radio,
			strings.NewReplacer("\n", " ", "\r", " ").Replace(s.Name),
		)
		buf.WriteString(s.Stream + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}
