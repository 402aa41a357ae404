package domain

import (
	"context"
	"errors"
)

var (
	// ErrNoImageData is returned when a response carries no inline image part
	ErrNoImageData = errors.New("no image data returned")

	// ErrPromptBlocked is returned when the service refused the prompt
	ErrPromptBlocked = errors.New("prompt blocked by safety filter")

	// ErrNoResults is returned when every variant of a run failed
	ErrNoResults = errors.New("failed to generate any cursors, please try a different theme")

	// ErrEmptyTheme is returned for empty or whitespace-only themes
	ErrEmptyTheme = errors.New("theme must not be empty")

	// ErrThemeNotAllowed is returned when a theme contains a blocked word
	ErrThemeNotAllowed = errors.New("theme contains inappropriate words")
)

// GenerationRequest pairs a cursor variant with the prompt sent for it
type GenerationRequest struct {
	Variant    Variant
	PromptText string
}

// RawImage is an encoded image payload as returned by the generation service
type RawImage struct {
	MimeType string
	// Data is the base64 encoded image
	Data string
}

// ImageGenerator defines the generation service port
type ImageGenerator interface {
	// GenerateImage sends a prompt and returns the first inline image of the response.
	// A response without image data yields ErrNoImageData.
	GenerateImage(ctx context.Context, prompt string) (*RawImage, error)
}
