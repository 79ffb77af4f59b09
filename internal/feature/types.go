// Package feature defines the raw perceptual inputs to the synthesis
// pipeline. Feature summaries are produced by external extractors (palm and
// tongue computer vision, dream text capture) and are never mutated here.
package feature

// PalmFeatures is the structured summary emitted by the palm image extractor.
type PalmFeatures struct {
	Color             string  `json:"color"`   // rosy, pale, red, yellow, dark
	Texture           string  `json:"texture"` // smooth, rough, dry
	LifeLineDeep      bool    `json:"life_line_deep"`
	HeadLineClear     bool    `json:"head_line_clear"`
	HeartLineLong     bool    `json:"heart_line_long"`
	WealthLinePresent bool    `json:"wealth_line_present"`
	Quality           float64 `json:"quality"`           // extractor confidence the image depicts a palm, 0..1
	Subject           string  `json:"subject,omitempty"` // extractor's label of what the image depicts; empty when undetermined
}

// TongueFeatures is the structured summary emitted by the tongue image extractor.
type TongueFeatures struct {
	Color   string  `json:"color"`   // pink, pale, red, crimson, purple
	Coating string  `json:"coating"` // thin_white, thick_white, yellow, greasy, none
	Texture string  `json:"texture"` // normal, tender, tooth_marked, cracked
	Quality float64 `json:"quality"`
	Subject string  `json:"subject,omitempty"`
}

// DreamNarrative carries the free-text dream description plus optional hints
// supplied by the capture UI.
type DreamNarrative struct {
	Text         string `json:"text"`
	Locale       string `json:"locale"`
	EmotionHint  string `json:"emotion_hint,omitempty"`  // calm, anxious, fearful, joyful
	CategoryHint string `json:"category_hint,omitempty"` // water, flying, chase, falling, journey
}

// Set bundles the three modality inputs of one analysis request.
type Set struct {
	Palm   PalmFeatures   `json:"palm"`
	Tongue TongueFeatures `json:"tongue"`
	Dream  DreamNarrative `json:"dream"`
}
