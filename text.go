package main

var (
	SiteTitle       = "LERL — Portfolio"
	SiteDescription = "Projects, research, and startups by Luis Román."
	AuthorName      = "Luis E. Román Lizasoain"

	Greeting = "Hi! I'm Luis."
	Nickname = "Or LERL as short for Luis Enrique Román Lizasoain."

	Headline = []string{
		"⚙️ Hardware & Embedded Systems",
		"🧠 AI & Intelligent Systems",
		"🔬 Scientific Research & Innovation",
		"🚀 Product Building",
	}

	ContactIntro = `Questions about a project, a research collaboration, or a lab workflow
	that keeps getting in your way? Send a message and I'll get back to you.`
)

// interestBoxes labels the four animated boxes, in layout order.
var interestBoxes = []struct {
	Scene string
	Label string
}{
	{"brain", "Artificial Intelligence"},
	{"fiber", "Photonics"},
	{"circuit", "Electronics"},
	{"terminal", "Programming"},
}
