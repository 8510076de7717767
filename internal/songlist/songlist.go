// package songlist reads song titles out of CSV exports. The song
// column is detected by header name, so exports from different services
// work without configuration.
package songlist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/trackferry/trackferry/internal/shared"
)

// songColumns are the header names recognized as the title column,
// compared case-insensitively after trimming.
var songColumns = map[string]struct{}{
	"song": {}, "songs": {}, "name": {}, "names": {}, "title": {}, "titles": {},
	"track": {}, "track name": {}, "song title": {}, "track title": {},
}

// List is the parsed contents of a song CSV.
type List struct {
	Column string
	Titles []string
}

// ParseFile reads a CSV file, falling back to Latin-1 decoding when the
// contents are not valid UTF-8.
func ParseFile(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song list: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: file is neither UTF-8 nor Latin-1", shared.ErrInvalidInput)
		}
		data = decoded
	}

	return Parse(strings.NewReader(string(data)))
}

// Parse reads CSV rows, locates the song column, and returns the
// non-empty titles in row order.
func Parse(r io.Reader) (*List, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", shared.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}

	col := detectSongColumn(header)
	if col < 0 {
		return nil, fmt.Errorf("%w: headers are %v", shared.ErrMissingColumn, header)
	}

	list := &List{Column: strings.TrimSpace(header[col])}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		title := strings.TrimSpace(row[col])
		if title == "" || strings.EqualFold(title, "nan") {
			continue
		}
		list.Titles = append(list.Titles, title)
	}

	return list, nil
}

// detectSongColumn returns the index of the first recognized header, or
// -1 when no candidate matches.
func detectSongColumn(header []string) int {
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.TrimPrefix(name, "\uFEFF")
		if _, ok := songColumns[name]; ok {
			return i
		}
	}
	return -1
}
