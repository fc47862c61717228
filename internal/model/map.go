package model

type Marker struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Color       string   `json:"color"`
	Origin      string   `json:"origin,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Reviews     []string `json:"reviews,omitempty"`
	SpeechText  string   `json:"speech_text"`
}

type Viewport struct {
	Center [2]float64 `json:"center"`
	Zoom   int        `json:"zoom"`
}
