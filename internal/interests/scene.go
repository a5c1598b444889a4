package interests

import "time"

// Box sizes of the four canvases, in view box units.
const (
	boxWidth  = 160
	boxHeight = 120
)

// Names lists the scenes in the order the boxes are laid out.
var Names = []string{"brain", "fiber", "circuit", "terminal"}

// Scene returns the named scene ready to be serialised for the browser.
func Scene(name string) (any, bool) {
	switch name {
	case "brain":
		return Brain(), true
	case "circuit":
		return Circuit(boxWidth, boxHeight), true
	case "fiber":
		return Fiber(boxWidth, boxHeight), true
	case "terminal":
		return Terminal(), true
	}
	return nil, false
}

// FirstFrame is the terminal as rendered before any script runs.
func FirstFrame() TerminalFrame {
	return Terminal().Frame(3 * time.Second)
}
