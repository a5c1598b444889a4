package portfolio

// Slide is one image of the lightbox carousel.
type Slide struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

// Slides lists the project's images as lightbox slides, captions becoming
// descriptions.
func (p Project) Slides() []Slide {
	slides := make([]Slide, len(p.Images))
	for i, img := range p.Images {
		slides[i] = Slide{Src: img.Src, Description: img.Caption}
	}
	return slides
}

// LightboxView is the lightbox opened on one slide.
type LightboxView struct {
	Slug   string
	Title  string
	Slides []Slide
	Index  int
	Prev   int
	Next   int
}

func (v LightboxView) Current() Slide { return v.Slides[v.Index] }

func (v LightboxView) HasPrev() bool { return v.Index > 0 }

func (v LightboxView) HasNext() bool { return v.Index < len(v.Slides)-1 }

// Lightbox opens the carousel at index, clamped to the available slides.
// It reports false when the project has no images.
func Lightbox(p Project, index int) (LightboxView, bool) {
	slides := p.Slides()
	if len(slides) == 0 {
		return LightboxView{}, false
	}
	index = max(0, min(index, len(slides)-1))
	return LightboxView{
		Slug:   p.Slug,
		Title:  p.Title,
		Slides: slides,
		Index:  index,
		Prev:   max(index-1, 0),
		Next:   min(index+1, len(slides)-1),
	}, true
}
