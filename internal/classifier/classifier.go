// Package classifier guesses what a canvas drawing shows from its colour statistics: a live
// chicken (by feather colour) or a chicken dish.
package classifier

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrInvalidRaster = errors.New("invalid raster")

type Descriptor string

const (
	FriedChicken     Descriptor = "fried chicken"
	ChickenDrumstick Descriptor = "chicken drumstick"
	GrilledChicken   Descriptor = "grilled chicken"
	RoastedChicken   Descriptor = "roasted chicken"
	CrispyChicken    Descriptor = "crispy chicken"

	BrownChicken Descriptor = "brown chicken"
	WhiteChicken Descriptor = "white chicken"
	BlackChicken Descriptor = "black chicken"
	SmallChicken Descriptor = "small chicken"
)

// FoodDescriptors is the fixed list a food verdict draws from.
var FoodDescriptors = []Descriptor{
	FriedChicken,
	ChickenDrumstick,
	GrilledChicken,
	RoastedChicken,
	CrispyChicken,
}

const (
	blankThreshold = 245
	smallCoverage  = 0.02
	goldenWeight   = 1.2
	redWeight      = 1.1
)

// Raster is a flat RGBA buffer, 4 bytes per pixel, row-major.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

func NewRaster(width, height int, pix []byte) (Raster, error) {
	if width <= 0 || height <= 0 {
		return Raster{}, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, width, height)
	}
	// Compared by division: width*height*4 can overflow int.
	if width > len(pix)/4/height {
		return Raster{}, fmt.Errorf("%w: %dx%d needs more than %d bytes", ErrInvalidRaster, width, height, len(pix))
	}
	return Raster{Width: width, Height: height, Pix: pix}, nil
}

func (r Raster) Area() int {
	return r.Width * r.Height
}

type BucketCounts struct {
	White  int `json:"white"`
	Black  int `json:"black"`
	Brown  int `json:"brown"`
	Golden int `json:"golden"`
	Red    int `json:"red"`
	Total  int `json:"total"`
}

// Scores are bucket counts normalised by the sampled pixel count (floored at 1).
type Scores struct {
	Food  float64 `json:"food"`
	White float64 `json:"white"`
	Black float64 `json:"black"`
	Brown float64 `json:"brown"`
}

func (s Scores) LiveChicken() float64 {
	return max(s.White, s.Black, s.Brown)
}

type Verdict struct {
	IsFood     bool       `json:"is_food"`
	Descriptor Descriptor `json:"descriptor"`
}

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

type Classifier struct {
	picker Picker
}

func New(picker Picker) *Classifier {
	if picker == nil {
		picker = globalPicker{}
	}
	return &Classifier{picker: picker}
}

// Count walks every complete pixel once. A pixel may land in several buckets: the colour
// ranges overlap and are counted independently.
func Count(r Raster) BucketCounts {
	var c BucketCounts

	n := min(r.Area(), len(r.Pix)/4)
	for i := 0; i < n; i++ {
		red, green, blue := r.Pix[i*4], r.Pix[i*4+1], r.Pix[i*4+2]
		if red > blankThreshold && green > blankThreshold && blue > blankThreshold {
			continue
		}
		c.Total++

		p := RGBToHSL(red, green, blue)
		if p.L > 85 && p.S < 20 {
			c.White++
		}
		if p.L < 15 && p.S < 30 {
			c.Black++
		}
		if p.H > 20 && p.H < 60 && p.S < 60 && p.L < 60 {
			c.Brown++
		}
		if p.H >= 40 && p.H <= 60 && p.S >= 50 && p.L >= 40 && p.L <= 70 {
			c.Golden++
		}
		if p.H >= 5 && p.H <= 30 && p.S >= 60 && p.L >= 30 {
			c.Red++
		}
	}

	return c
}

func Score(c BucketCounts) Scores {
	denom := float64(max(1, c.Total))
	return Scores{
		Food:  (float64(c.Golden)*goldenWeight + float64(c.Red)*redWeight) / denom,
		White: float64(c.White) / denom,
		Black: float64(c.Black) / denom,
		Brown: float64(c.Brown) / denom,
	}
}

// Analysis is a verdict together with the statistics it was decided from.
type Analysis struct {
	Verdict
	Counts BucketCounts `json:"counts"`
	Scores Scores       `json:"scores"`
}

// Classify never fails; an empty canvas yields a brown chicken.
func (c *Classifier) Classify(r Raster) Verdict {
	return c.Analyze(r).Verdict
}

func (c *Classifier) Analyze(r Raster) Analysis {
	counts := Count(r)
	scores := Score(counts)
	return Analysis{
		Verdict: c.decide(counts, scores, r.Area()),
		Counts:  counts,
		Scores:  scores,
	}
}

func (c *Classifier) decide(counts BucketCounts, s Scores, area int) Verdict {
	if s.Food > s.LiveChicken() {
		return Verdict{
			IsFood:     true,
			Descriptor: FoodDescriptors[c.picker.IntN(len(FoodDescriptors))],
		}
	}

	descriptor := BrownChicken
	if s.White > s.Black && s.White > s.Brown {
		descriptor = WhiteChicken
	}
	if s.Black > s.White && s.Black > s.Brown {
		descriptor = BlackChicken
	}
	// Zero sampled pixels is the blank canvas case, which keeps the brown default.
	if counts.Total > 0 && float64(counts.Total) < float64(area)*smallCoverage {
		descriptor = SmallChicken
	}

	return Verdict{IsFood: false, Descriptor: descriptor}
}
