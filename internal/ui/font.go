// Package ui is the Ebitengine board window: it draws the grid and the
// side panel, turns clicks into moves and runs the engine off the UI thread.
package ui

import (
	"bytes"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFace *text.GoTextFace
	boldFace    *text.GoTextFace
	titleFace   *text.GoTextFace
)

const (
	defaultFontSize = 14.0
	boldFontSize    = 16.0
	titleFontSize   = 22.0
)

func init() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		slog.Warn("failed to load regular font", "error", err)
		return
	}
	regularFace = &text.GoTextFace{Source: regular, Size: defaultFontSize}

	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		slog.Warn("failed to load bold font", "error", err)
		return
	}
	boldFace = &text.GoTextFace{Source: bold, Size: boldFontSize}
	titleFace = &text.GoTextFace{Source: bold, Size: titleFontSize}
}

// MeasureText returns the width and height of s in face.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
