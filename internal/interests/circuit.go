package interests

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

type Side string

const (
	Top    Side = "top"
	Right  Side = "right"
	Bottom Side = "bottom"
	Left   Side = "left"
)

// Trace is a copper track drawn as a polyline. DelayMs staggers when the
// signal starts travelling along it. Path samples PointAt evenly so the
// browser only interpolates between neighbouring samples.
type Trace struct {
	Side    Side    `json:"side"`
	Points  []Point `json:"points"`
	Path    []Point `json:"path"`
	DelayMs int     `json:"delayMs"`
}

// Length is the total length of the polyline.
func (t Trace) Length() float64 {
	var l float64
	for i := 1; i < len(t.Points); i++ {
		l += t.Points[i-1].dist(t.Points[i])
	}
	return l
}

// PointAt returns the point at the given fraction of the trace length.
// Progress outside [0,1] is clamped.
func (t Trace) PointAt(progress float64) Point {
	if len(t.Points) == 0 {
		return Point{}
	}
	progress = math.Max(0, math.Min(1, progress))
	remaining := t.Length() * progress
	for i := 1; i < len(t.Points); i++ {
		a, b := t.Points[i-1], t.Points[i]
		seg := a.dist(b)
		if remaining <= seg {
			if seg == 0 {
				return a
			}
			f := remaining / seg
			return Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
		}
		remaining -= seg
	}
	return t.Points[len(t.Points)-1]
}

// sample evaluates at for n+1 evenly spaced progress values in [0,1].
func sample(n int, at func(float64) Point) []Point {
	if n < 1 {
		return nil
	}
	points := make([]Point, n+1)
	for i := range points {
		points[i] = at(float64(i) / float64(n))
	}
	return points
}

type Pin struct {
	Side Side  `json:"side"`
	From Point `json:"from"`
	To   Point `json:"to"`
}

// CircuitScene is a chip in the middle of a board with a trace leaving every
// pin for the board edge.
type CircuitScene struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Chip     Point   `json:"chip"`
	ChipSize float64 `json:"chipSize"`
	Pins     []Pin   `json:"pins"`
	Traces   []Trace `json:"traces"`
	PeriodMs int     `json:"periodMs"`
	TravelMs int     `json:"travelMs"`
}

const (
	chipSize    = 25.0
	pinLength   = 4.0
	pinsPerSide = 4
	clearance   = 6.0
	fanOut      = 2.5

	traceSamples = 32
)

// Circuit routes the board for a width x height view box.
func Circuit(width, height float64) CircuitScene {
	center := Point{X: width / 2, Y: height / 2}
	scene := CircuitScene{
		Width:    width,
		Height:   height,
		Chip:     Point{X: center.X - chipSize/2, Y: center.Y - chipSize/2},
		ChipSize: chipSize,
		PeriodMs: 4000,
		TravelMs: 1600,
	}

	for si, side := range []Side{Top, Right, Bottom, Left} {
		edge := height / 2
		if side == Left || side == Right {
			edge = width / 2
		}
		for i := 0; i < pinsPerSide; i++ {
			u := -chipSize/2 + chipSize/(pinsPerSide+1)*float64(i+1)
			scene.Pins = append(scene.Pins, Pin{
				Side: side,
				From: place(center, side, u, chipSize/2),
				To:   place(center, side, u, chipSize/2+pinLength),
			})
			tr := Trace{
				Side:    side,
				Points:  route(center, side, u, edge),
				DelayMs: (si*pinsPerSide + i) * 250,
			}
			tr.Path = sample(traceSamples, tr.PointAt)
			scene.Traces = append(scene.Traces, tr)
		}
	}
	return scene
}

// route leads a trace out of the pin at offset u: straight for the
// clearance, a 45 degree diagonal fanning away from the chip axis, then
// straight to the board edge.
func route(center Point, side Side, u, edge float64) []Point {
	v0 := chipSize/2 + pinLength
	v1 := v0 + clearance
	du := u*fanOut - u
	if room := edge - v1; math.Abs(du) > room {
		du = math.Copysign(math.Max(room, 0), du)
	}
	v2 := v1 + math.Abs(du)

	local := [][2]float64{{u, v0}, {u, v1}, {u + du, v2}, {u + du, edge}}
	points := make([]Point, 0, len(local))
	for _, l := range local {
		p := place(center, side, l[0], l[1])
		if n := len(points); n > 0 && points[n-1] == p {
			continue
		}
		points = append(points, p)
	}
	return points
}

// place maps side-local coordinates (u along the side, v outward from the
// center) onto the board.
func place(center Point, side Side, u, v float64) Point {
	switch side {
	case Top:
		return Point{X: center.X + u, Y: center.Y - v}
	case Bottom:
		return Point{X: center.X + u, Y: center.Y + v}
	case Left:
		return Point{X: center.X - v, Y: center.Y + u}
	default:
		return Point{X: center.X + v, Y: center.Y + u}
	}
}
