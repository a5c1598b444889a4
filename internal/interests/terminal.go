package interests

import "time"

// TerminalScript drives the typing effect: each cycle types one command,
// prints the log lines, holds, then fades before the next command.
//
// Within a cycle the command is typed over TypeMs and the typing phase lasts
// until OutputStartMs. The output phase runs until OutputEndMs and shows the
// logs once LogsAfterMs of it have passed. The last FadeMs of the cycle fade
// out, hiding the logs halfway through.
type TerminalScript struct {
	Commands      []string `json:"commands"`
	Logs          []string `json:"logs"`
	CycleMs       int      `json:"cycleMs"`
	TypeMs        int      `json:"typeMs"`
	OutputStartMs int      `json:"outputStartMs"`
	OutputEndMs   int      `json:"outputEndMs"`
	LogsAfterMs   int      `json:"logsAfterMs"`
	FadeMs        int      `json:"fadeMs"`
	BlinkMs       int      `json:"blinkMs"`

	// Steps lists, per command, the moments within a cycle where the
	// visible text or log visibility changes.
	Steps [][]TerminalStep `json:"steps"`
}

// TerminalStep is the terminal state from AtMs into the cycle until the next
// step.
type TerminalStep struct {
	AtMs     int  `json:"atMs"`
	Chars    int  `json:"chars"`
	ShowLogs bool `json:"showLogs"`
}

type Phase string

const (
	Typing Phase = "typing"
	Output Phase = "output"
	Hold   Phase = "hold"
	Fade   Phase = "fade"
)

// TerminalFrame is what the terminal shows at one instant.
type TerminalFrame struct {
	Index    int    `json:"index"`
	Phase    Phase  `json:"phase"`
	Command  string `json:"command"`
	Complete bool   `json:"complete"`
	ShowLogs bool   `json:"showLogs"`
	Cursor   bool   `json:"cursor"`
}

const terminalStepMs = 10

// Terminal returns the default script.
func Terminal() TerminalScript {
	s := TerminalScript{
		Commands:      []string{"> go build ./...", "> python app.py", "> cargo build"},
		Logs:          []string{"✔ Compiling modules...", "✔ Build complete", "✔ Tests passed"},
		CycleMs:       8000,
		TypeMs:        2000,
		OutputStartMs: 2500,
		OutputEndMs:   5500,
		LogsAfterMs:   600,
		FadeMs:        500,
		BlinkMs:       530,
	}
	s.Steps = s.steps(terminalStepMs)
	return s
}

// Frame computes the terminal state elapsed after the animation started.
func (s TerminalScript) Frame(elapsed time.Duration) TerminalFrame {
	ms := int(elapsed.Milliseconds())
	if ms < 0 {
		ms = 0
	}
	var f TerminalFrame
	if s.BlinkMs > 0 {
		f.Cursor = (ms/s.BlinkMs)%2 == 0
	}
	if len(s.Commands) == 0 || s.CycleMs <= 0 {
		return f
	}

	f.Index = (ms / s.CycleMs) % len(s.Commands)
	cmd := []rune(s.Commands[f.Index])
	t := ms % s.CycleMs
	fadeAt := s.CycleMs - s.FadeMs

	switch {
	case t < s.OutputStartMs:
		f.Phase = Typing
		n := len(cmd)
		if s.TypeMs > 0 {
			n = min(len(cmd), t*len(cmd)/s.TypeMs)
		}
		f.Command = string(cmd[:n])
		f.Complete = n >= len(cmd)
		return f
	case t < s.OutputEndMs:
		f.Phase = Output
		f.ShowLogs = t-s.OutputStartMs > s.LogsAfterMs
	case t < fadeAt:
		f.Phase = Hold
		f.ShowLogs = true
	default:
		f.Phase = Fade
		f.ShowLogs = 2*(t-fadeAt) <= s.FadeMs
	}
	f.Command = string(cmd)
	f.Complete = true
	return f
}

// steps samples Frame every stepMs through one cycle of each command and
// keeps the samples where the display changes.
func (s TerminalScript) steps(stepMs int) [][]TerminalStep {
	if stepMs <= 0 || s.CycleMs <= 0 {
		return nil
	}
	out := make([][]TerminalStep, len(s.Commands))
	for i := range s.Commands {
		base := i * s.CycleMs
		var steps []TerminalStep
		for t := 0; t < s.CycleMs; t += stepMs {
			f := s.Frame(time.Duration(base+t) * time.Millisecond)
			st := TerminalStep{AtMs: t, Chars: len([]rune(f.Command)), ShowLogs: f.ShowLogs}
			if n := len(steps); n > 0 && steps[n-1].Chars == st.Chars && steps[n-1].ShowLogs == st.ShowLogs {
				continue
			}
			steps = append(steps, st)
		}
		out[i] = steps
	}
	return out
}
