package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/trackferry/trackferry/internal/normalize"
)

var _ list.Item = songItem{}

// songItem wraps a raw song title to implement [list.Item].
//
// The description shows the canonical form that will drive search and
// duplicate detection, so surprising normalizations are visible up front.
type songItem struct {
	title string
}

func (i songItem) FilterValue() string { return i.title }
func (i songItem) Title() string       { return i.title }
func (i songItem) Description() string {
	canonical := normalize.Canonical(i.title)
	if canonical == "" {
		return "(nothing searchable after normalization)"
	}
	return canonical
}
