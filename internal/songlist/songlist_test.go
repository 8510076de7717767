package songlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trackferry/trackferry/internal/shared"
)

func TestParse(t *testing.T) {
	t.Run("detects title column", func(t *testing.T) {
		input := "Artist,Track Name,Album\nQueen,Bohemian Rhapsody,A Night at the Opera\nJohn Lennon,Imagine,Imagine\n"

		list, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if list.Column != "Track Name" {
			t.Errorf("expected column 'Track Name', got %q", list.Column)
		}
		if len(list.Titles) != 2 {
			t.Fatalf("expected 2 titles, got %d", len(list.Titles))
		}
		if list.Titles[0] != "Bohemian Rhapsody" || list.Titles[1] != "Imagine" {
			t.Errorf("unexpected titles: %v", list.Titles)
		}
	})

	t.Run("header match is case-insensitive", func(t *testing.T) {
		input := "SONG\nHello\n"

		list, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list.Titles) != 1 {
			t.Errorf("expected 1 title, got %d", len(list.Titles))
		}
	})

	t.Run("skips blank and nan rows", func(t *testing.T) {
		input := "title\nOne\n\n   \nnan\nNaN\nTwo\n"

		list, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list.Titles) != 2 {
			t.Errorf("expected blank and nan rows skipped, got %v", list.Titles)
		}
	})

	t.Run("no recognized column", func(t *testing.T) {
		input := "Artist,Album\nQueen,A Night at the Opera\n"

		_, err := Parse(strings.NewReader(input))
		if !errors.Is(err, shared.ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		input := "artist,song\nQueen,Bohemian Rhapsody\nShortRow\n"

		list, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list.Titles) != 1 {
			t.Errorf("expected short row skipped, got %v", list.Titles)
		}
	})
}

func TestParseFile(t *testing.T) {
	t.Run("reads utf-8 file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		if err := os.WriteFile(path, []byte("song\n永遠に光れ\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		list, err := ParseFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list.Titles) != 1 || list.Titles[0] != "永遠に光れ" {
			t.Errorf("unexpected titles: %v", list.Titles)
		}
	})

	t.Run("falls back to latin-1", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		// "Beyoncé" with é encoded as Latin-1 0xE9, invalid as UTF-8.
		data := append([]byte("song\nBeyonc"), 0xE9, '\n')
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		list, err := ParseFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list.Titles) != 1 || list.Titles[0] != "Beyoncé" {
			t.Errorf("unexpected titles: %v", list.Titles)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ParseFile("/does/not/exist.csv"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
