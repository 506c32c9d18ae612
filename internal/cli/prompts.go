package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"voxel.app/studio/internal/video"
)

// promptForGeneration collects video job parameters interactively.
func promptForGeneration(defaults videoParams) (video.GenerationRequest, error) {
	req := video.GenerationRequest{}

	prompt := &survey.Input{
		Message: "Describe the video to generate:",
		Help:    "A short text prompt, e.g. \"a red fox running through fresh snow\"",
	}

	err := survey.AskOne(prompt, &req.Prompt, survey.WithValidator(func(val interface{}) error {
		if strings.TrimSpace(val.(string)) == "" {
			return fmt.Errorf("prompt cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return req, err
	}

	req.Width, err = promptForDimension("Width in pixels:", defaults.Width)
	if err != nil {
		return req, err
	}

	req.Height, err = promptForDimension("Height in pixels:", defaults.Height)
	if err != nil {
		return req, err
	}

	req.Seconds, err = promptForDuration(defaults.Seconds)
	if err != nil {
		return req, err
	}

	return req, nil
}

// promptForDimension prompts for a frame dimension in pixels
func promptForDimension(message string, def int) (int, error) {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Help:    fmt.Sprintf("Between %d and %d, in steps of %d", video.MinDimension, video.MaxDimension, video.DimensionStep),
		Default: strconv.Itoa(def),
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		n, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < video.MinDimension || n > video.MaxDimension {
			return fmt.Errorf("must be between %d and %d", video.MinDimension, video.MaxDimension)
		}
		if n%video.DimensionStep != 0 {
			return fmt.Errorf("must be a multiple of %d", video.DimensionStep)
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// promptForDuration prompts for the clip duration in seconds
func promptForDuration(def int) (int, error) {
	var raw string
	prompt := &survey.Input{
		Message: "Duration in seconds:",
		Help:    fmt.Sprintf("Between %d and %d seconds", video.MinSeconds, video.MaxSeconds),
		Default: strconv.Itoa(def),
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		n, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < video.MinSeconds || n > video.MaxSeconds {
			return fmt.Errorf("must be between %d and %d seconds", video.MinSeconds, video.MaxSeconds)
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// promptForConfirmation shows the collected parameters and asks to proceed.
func promptForConfirmation(req video.GenerationRequest) (bool, error) {
	fmt.Printf("\n  Prompt:   %s\n  Size:     %dx%d\n  Duration: %d seconds\n\n",
		req.Prompt, req.Width, req.Height, req.Seconds)

	var confirmed bool
	prompt := &survey.Confirm{
		Message: "Submit this video generation job?",
		Default: true,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}
