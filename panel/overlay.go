package panel

import (
	"fmt"
	"strings"
)

// Overlay collects formatted text lines, rebuilt each frame for the HUD.
type Overlay struct {
	lines []string
}

func (o *Overlay) AddLine(format string, args ...interface{}) {
	o.lines = append(o.lines, fmt.Sprintf(format, args...))
}

func (o *Overlay) Clear() {
	o.lines = o.lines[:0]
}

func (o *Overlay) Lines() []string {
	return o.lines
}

// GetText joins the lines, each terminated by a newline.
func (o *Overlay) GetText() string {
	if len(o.lines) == 0 {
		return ""
	}
	return strings.Join(o.lines, "\n") + "\n"
}
