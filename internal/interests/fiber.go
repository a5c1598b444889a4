package interests

import "math"

// FiberScene is an optical fiber drawn as a cubic Bézier curve with light
// pulses travelling along it.
//
// Path samples the curve and Frames holds the pulses of one steady-state
// emission period every FrameMs, so the browser replays them instead of
// evaluating the curve itself.
type FiberScene struct {
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Curve     [4]Point  `json:"curve"`
	EmitMs    int       `json:"emitMs"`
	MaxPulses int       `json:"maxPulses"`
	TravelMs  int       `json:"travelMs"`
	Path      []Point   `json:"path"`
	FrameMs   int       `json:"frameMs"`
	Frames    [][]Pulse `json:"frames"`
}

const (
	fiberSamples = 48
	fiberFrameMs = 40
)

// Pulse is a pulse at some instant: Progress runs from 0 at the source to 1
// at the detector.
type Pulse struct {
	ID       int     `json:"id"`
	Progress float64 `json:"progress"`
	Opacity  float64 `json:"opacity"`
}

// Fiber lays the fiber across a width x height view box, entering low on the
// left and leaving high on the right.
func Fiber(width, height float64) FiberScene {
	f := FiberScene{
		Width:  width,
		Height: height,
		Curve: [4]Point{
			{X: width * 0.08, Y: height * 0.7},
			{X: width * 0.35, Y: height * 0.05},
			{X: width * 0.65, Y: height * 0.95},
			{X: width * 0.92, Y: height * 0.3},
		},
		EmitMs:    1200,
		MaxPulses: 5,
		TravelMs:  3000,
		FrameMs:   fiberFrameMs,
	}
	f.Path = sample(fiberSamples, f.PointOnFiber)
	f.Frames = f.Cycle(f.FrameMs)
	return f
}

// PointOnFiber evaluates the curve at t, clamped to [0,1].
func (f FiberScene) PointOnFiber(t float64) Point {
	t = math.Max(0, math.Min(1, t))
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	p := f.Curve
	return Point{
		X: a*p[0].X + b*p[1].X + c*p[2].X + d*p[3].X,
		Y: a*p[0].Y + b*p[1].Y + c*p[2].Y + d*p[3].Y,
	}
}

// Pulses returns the pulses alive elapsedMs after the animation started. A
// pulse is emitted every EmitMs; only the newest MaxPulses are kept and a
// pulse disappears once it reaches the detector. Pulses fade over the last
// fifth of the fiber.
func (f FiberScene) Pulses(elapsedMs int) []Pulse {
	if elapsedMs < 0 || f.EmitMs <= 0 || f.TravelMs <= 0 {
		return nil
	}
	newest := elapsedMs / f.EmitMs
	oldest := max(0, newest-f.MaxPulses+1)

	var pulses []Pulse
	for id := oldest; id <= newest; id++ {
		progress := float64(elapsedMs-id*f.EmitMs) / float64(f.TravelMs)
		if progress >= 1 {
			continue
		}
		opacity := 1.0
		if progress > 0.8 {
			opacity = (1 - progress) / 0.2
		}
		pulses = append(pulses, Pulse{ID: id, Progress: progress, Opacity: opacity})
	}
	return pulses
}

// Cycle samples Pulses every frameMs over one emission period, late enough
// that the pulse pattern no longer depends on when the animation started.
func (f FiberScene) Cycle(frameMs int) [][]Pulse {
	if frameMs <= 0 || f.EmitMs <= 0 || f.TravelMs <= 0 {
		return nil
	}
	warm := max((f.TravelMs+f.EmitMs-1)/f.EmitMs, f.MaxPulses) * f.EmitMs
	n := (f.EmitMs + frameMs - 1) / frameMs
	frames := make([][]Pulse, n)
	for i := range frames {
		frames[i] = f.Pulses(warm + i*frameMs)
	}
	return frames
}
