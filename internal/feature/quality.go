package feature

import (
	"fmt"
	"strings"
)

// MinImageQuality is the extractor-confidence floor below which an image is
// rejected as not plausibly depicting the expected subject.
const MinImageQuality = 0.35

// QualityError reports a user-correctable input problem. The pipeline must
// not proceed to archetype or generation stages when one is returned.
type QualityError struct {
	Modality string // "palm", "tongue", "dream"
	Reason   string
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("input quality: %s: %s", e.Modality, e.Reason)
}

// CheckQuality validates the feature set before any derivation runs.
// It returns a *QualityError describing the first failing modality, or nil.
func CheckQuality(set Set) error {
	if set.Palm.Quality < MinImageQuality {
		return &QualityError{Modality: "palm", Reason: "image does not clearly show a palm"}
	}
	if set.Palm.Subject != "" && set.Palm.Subject != "palm" {
		return &QualityError{Modality: "palm", Reason: "image shows " + set.Palm.Subject + ", not a palm"}
	}
	if set.Tongue.Quality < MinImageQuality {
		return &QualityError{Modality: "tongue", Reason: "image does not clearly show a tongue"}
	}
	if set.Tongue.Subject != "" && set.Tongue.Subject != "tongue" {
		return &QualityError{Modality: "tongue", Reason: "image shows " + set.Tongue.Subject + ", not a tongue"}
	}
	if strings.TrimSpace(set.Dream.Text) == "" {
		return &QualityError{Modality: "dream", Reason: "dream description is empty"}
	}
	return nil
}
