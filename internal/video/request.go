package video

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension and duration limits of the video generations preview API.
const (
	MinDimension  = 64
	MaxDimension  = 1080
	DimensionStep = 64
	MinSeconds    = 1
	MaxSeconds    = 60
)

// GenerationRequest describes one video to generate.
type GenerationRequest struct {
	Prompt  string
	Width   int
	Height  int
	Seconds int
}

// Validate checks the request against the preview API limits.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt is empty")
	}
	if err := validateDimension("width", r.Width); err != nil {
		return err
	}
	if err := validateDimension("height", r.Height); err != nil {
		return err
	}
	if r.Seconds < MinSeconds || r.Seconds > MaxSeconds {
		return fmt.Errorf("duration must be between %d and %d seconds, got %d", MinSeconds, MaxSeconds, r.Seconds)
	}
	return nil
}

func validateDimension(name string, v int) error {
	if v < MinDimension || v > MaxDimension {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, MinDimension, MaxDimension, v)
	}
	if v%DimensionStep != 0 {
		return fmt.Errorf("%s must be a multiple of %d, got %d", name, DimensionStep, v)
	}
	return nil
}

// body renders the request in the wire shape the jobs API expects. Numeric
// values are sent as strings; the preview surface supports one variant.
func (r GenerationRequest) body(model string) map[string]string {
	return map[string]string{
		"model":      model,
		"prompt":     strings.TrimSpace(r.Prompt),
		"height":     strconv.Itoa(r.Height),
		"width":      strconv.Itoa(r.Width),
		"n_seconds":  strconv.Itoa(r.Seconds),
		"n_variants": "1",
	}
}
