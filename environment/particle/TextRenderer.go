package particle

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// TextMode is the render mode handled by TextRenderer
const TextMode string = "ansi"

// TextRenderer renders a World as a single line of text per call
type TextRenderer struct {
	out io.Writer
}

// NewTextRenderer returns a new TextRenderer which writes to out
func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out}
}

// Render writes the step counter, the claimed landmark, and the
// position of every entity in w
func (t *TextRenderer) Render(w *World, mode string) error {
	if mode != TextMode {
		return errors.Wrapf(ErrUnsupportedRenderMode, "render: %q", mode)
	}

	var line strings.Builder
	fmt.Fprintf(&line, "step %d/%d", w.Steps, w.MaxFrames)
	if w.IsTouched() {
		fmt.Fprintf(&line, " | touched %d", w.Touched)
	}
	for _, b := range w.Entities() {
		e, s := b.body()
		coords := make([]string, s.PPos.Len())
		for i := range coords {
			coords[i] = fmt.Sprintf("%.3f", s.PPos.AtVec(i))
		}
		fmt.Fprintf(&line, " | %s (%s)", e.Name, strings.Join(coords, ", "))
		if !e.Movable {
			if _, ok := b.(*Agent); ok {
				line.WriteString(" frozen")
			}
		}
	}
	line.WriteString("\n")

	_, err := io.WriteString(t.out, line.String())
	return err
}
