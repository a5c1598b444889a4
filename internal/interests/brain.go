// Package interests computes the geometry behind the four animated boxes of
// the "I'm interested in..." section. The browser only interpolates and draws;
// layout, routing and timing live here so they can be tested.
package interests

import "slices"

type Node struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Links []int   `json:"-"`
}

type Connection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BrainScene is a neuron graph drawn over a 400x300 view box. Cascades maps
// each node id to the waves of nodes lit when activity starts there.
type BrainScene struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Nodes       []Node          `json:"nodes"`
	Connections []Connection    `json:"connections"`
	Cascades    map[int][][]int `json:"cascades"`
	EveryMs     int             `json:"everyMs"`
	WaveMs      int             `json:"waveMs"`
	FadeMs      int             `json:"fadeMs"`
}

const cascadeDepth = 3

var neurons = []Node{
	// left frontal
	{ID: 0, X: 175, Y: 55, Links: []int{1, 2, 10, 11}},
	{ID: 1, X: 150, Y: 65, Links: []int{0, 2, 3, 11}},
	{ID: 2, X: 180, Y: 95, Links: []int{0, 1, 3, 4}},
	{ID: 3, X: 155, Y: 90, Links: []int{1, 2, 4, 12}},
	{ID: 4, X: 130, Y: 92, Links: []int{2, 3, 5, 12}},
	// left parietal
	{ID: 5, X: 115, Y: 130, Links: []int{4, 6, 12, 13}},
	{ID: 6, X: 140, Y: 120, Links: []int{5, 7, 13, 14}},
	{ID: 7, X: 175, Y: 120, Links: []int{6, 8, 12, 15}},
	{ID: 8, X: 150, Y: 150, Links: []int{7, 9, 14, 15}},
	// left temporal
	{ID: 9, X: 110, Y: 170, Links: []int{8, 10, 14, 16}},
	{ID: 10, X: 145, Y: 187, Links: []int{0, 9, 11, 16}},
	{ID: 11, X: 181, Y: 162, Links: []int{0, 1, 10, 17}},
	{ID: 33, X: 180, Y: 195, Links: []int{0, 1, 10, 17}},
	// left occipital
	{ID: 12, X: 135, Y: 220, Links: []int{3, 4, 5, 13}},
	{ID: 13, X: 177, Y: 225, Links: []int{5, 6, 12, 14}},
	{ID: 14, X: 160, Y: 245, Links: []int{6, 8, 9, 13}},
	// corpus callosum
	{ID: 15, X: 200, Y: 130, Links: []int{7, 8, 18, 19, 20}},
	{ID: 16, X: 200, Y: 155, Links: []int{9, 10, 17, 21}},
	{ID: 17, X: 200, Y: 185, Links: []int{11, 16, 21, 22}},
	// right frontal
	{ID: 18, X: 225, Y: 55, Links: []int{15, 19, 27, 28}},
	{ID: 19, X: 250, Y: 65, Links: []int{15, 18, 20, 28}},
	{ID: 20, X: 220, Y: 95, Links: []int{15, 19, 21, 29}},
	{ID: 21, X: 245, Y: 90, Links: []int{16, 20, 22, 29}},
	{ID: 22, X: 270, Y: 92, Links: []int{17, 21, 23, 29}},
	// right parietal
	{ID: 23, X: 285, Y: 130, Links: []int{22, 24, 29, 30}},
	{ID: 24, X: 260, Y: 120, Links: []int{23, 25, 30, 31}},
	{ID: 25, X: 225, Y: 120, Links: []int{24, 26, 29, 32}},
	{ID: 26, X: 250, Y: 150, Links: []int{25, 27, 31, 32}},
	// right temporal
	{ID: 27, X: 290, Y: 170, Links: []int{18, 26, 28, 31}},
	{ID: 28, X: 255, Y: 187, Links: []int{18, 19, 27}},
	{ID: 29, X: 219, Y: 162, Links: []int{20, 21, 22}},
	{ID: 34, X: 220, Y: 195, Links: []int{20, 21, 22}},
	// right occipital
	{ID: 30, X: 265, Y: 220, Links: []int{23, 24, 31, 32}},
	{ID: 31, X: 223, Y: 225, Links: []int{24, 26, 30, 32}},
	{ID: 32, X: 240, Y: 245, Links: []int{25, 26, 34}},
}

// Brain returns the neuron scene.
func Brain() BrainScene {
	return newBrain(neurons)
}

func newBrain(nodes []Node) BrainScene {
	conns := Connect(nodes)
	adj := adjacency(conns)

	cascades := make(map[int][][]int, len(nodes))
	for _, n := range nodes {
		cascades[n.ID] = Cascade(adj, n.ID, cascadeDepth)
	}
	return BrainScene{
		Width:       400,
		Height:      300,
		Nodes:       nodes,
		Connections: conns,
		Cascades:    cascades,
		EveryMs:     1500,
		WaveMs:      180,
		FadeMs:      900,
	}
}

// Connect turns declared links into undirected connections. Links to nodes
// that do not exist are dropped and each pair appears once, lower id first.
func Connect(nodes []Node) []Connection {
	ids := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}

	seen := make(map[Connection]bool)
	var conns []Connection
	for _, n := range nodes {
		for _, to := range n.Links {
			if !ids[to] || to == n.ID {
				continue
			}
			c := Connection{From: min(n.ID, to), To: max(n.ID, to)}
			if seen[c] {
				continue
			}
			seen[c] = true
			conns = append(conns, c)
		}
	}
	return conns
}

func adjacency(conns []Connection) map[int][]int {
	adj := make(map[int][]int)
	for _, c := range conns {
		adj[c.From] = append(adj[c.From], c.To)
		adj[c.To] = append(adj[c.To], c.From)
	}
	for id := range adj {
		slices.Sort(adj[id])
	}
	return adj
}

// Cascade spreads activity breadth-first from start. Wave 0 is the start node;
// every later wave holds the not yet lit neighbours of the previous one, in
// ascending id order. At most depth waves follow the first.
func Cascade(adj map[int][]int, start, depth int) [][]int {
	lit := map[int]bool{start: true}
	waves := [][]int{{start}}
	for d := 0; d < depth; d++ {
		var next []int
		for _, id := range waves[len(waves)-1] {
			for _, nb := range adj[id] {
				if !lit[nb] {
					lit[nb] = true
					next = append(next, nb)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		slices.Sort(next)
		waves = append(waves, next)
	}
	return waves
}
