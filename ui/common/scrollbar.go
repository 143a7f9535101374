// Package common provides shared rendering helpers for the demo shells.
package common

import (
	"strings"

	"github.com/miosa/osa-virtual/style"
)

const (
	scrollTrackChar  = "│"
	scrollThumbChar  = "█"
	hScrollTrackChar = "─"
	hScrollThumbChar = "▬"
)

// ScrollbarModel tracks the dimensions needed to render a scrollbar along
// one axis. Values are in terminal cells.
type ScrollbarModel struct {
	viewport int
	content  int
	offset   int
}

// NewScrollbar creates a ScrollbarModel with the given dimensions.
func NewScrollbar(viewport, content, offset int) ScrollbarModel {
	return ScrollbarModel{
		viewport: viewport,
		content:  content,
		offset:   offset,
	}
}

// SetDimensions updates the scrollbar dimensions.
func (s *ScrollbarModel) SetDimensions(viewport, content, offset int) {
	s.viewport = viewport
	s.content = content
	s.offset = offset
}

// thumb returns the thumb position and length within the track, or ok=false
// when the content fits and no scrollbar is needed.
func (s ScrollbarModel) thumb() (start, length int, ok bool) {
	vh, ch := s.viewport, s.content
	if vh <= 0 || ch <= vh {
		return 0, 0, false
	}

	// Thumb length, at least 1 cell.
	length = min(max(vh*vh/ch, 1), vh)

	scrollable := ch - vh
	start = (s.offset * (vh - length)) / scrollable
	start = min(max(start, 0), vh-length)
	return start, length, true
}

// View renders a vertical scrollbar as a single column of characters.
//
// The track occupies viewport rows. The thumb is positioned and sized
// proportionally to the visible region within the total content. When the
// content fits within the viewport the returned string is empty.
func (s ScrollbarModel) View() string {
	top, h, ok := s.thumb()
	if !ok {
		return ""
	}
	rows := make([]string, s.viewport)
	for i := range rows {
		if i >= top && i < top+h {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// HorizontalView renders the scrollbar as a single row.
func (s ScrollbarModel) HorizontalView() string {
	left, w, ok := s.thumb()
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(style.ScrollbarTrack.Render(strings.Repeat(hScrollTrackChar, left)))
	sb.WriteString(style.ScrollbarThumb.Render(strings.Repeat(hScrollThumbChar, w)))
	sb.WriteString(style.ScrollbarTrack.Render(strings.Repeat(hScrollTrackChar, s.viewport-left-w)))
	return sb.String()
}

// Scrollbar is a convenience function that builds a one-shot vertical
// scrollbar string without creating a persistent model.
func Scrollbar(viewportHeight, contentHeight, offset int) string {
	return NewScrollbar(viewportHeight, contentHeight, offset).View()
}

// HScrollbar is the horizontal counterpart of Scrollbar.
func HScrollbar(viewportWidth, contentWidth, offset int) string {
	return NewScrollbar(viewportWidth, contentWidth, offset).HorizontalView()
}
