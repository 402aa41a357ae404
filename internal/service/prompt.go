package service

import (
	"fmt"
	"strings"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

const stylePreamble = `Generate a 128x128 pixel art cursor icon.
Style: Cute, cozy, 16-bit retro style.
Theme: "%[1]s".
Background: Solid MAGENTA (#FF00FF) color.
Constraint: NO anti-aliasing. NO drop shadows. Sharp pixel edges.
Subject: Large and distinct.
`

var variantDirectives = [domain.VariantCount]string{
	domain.VariantNormal: `Type: Normal Pointer.
Visual: A pixelated ARROW pointing to the TOP-LEFT corner.
Decoration: Add a small "%[1]s" themed item next to the arrow.
Color: Match the theme.`,
	domain.VariantPointing: `Type: Link Select Pointer.
Visual: A pixelated HAND pointing to the TOP-LEFT corner. The index finger must be extended pointing up-left.
Decoration: Add a small "%[1]s" themed item on the back of the hand.`,
	domain.VariantLoading: `Type: Loading/Busy Indicator.
Visual: A central object representing "%[1]s" that looks like it is waiting (e.g., spinning, sleeping, hourglass).
No arrow. Centered subject.`,
	domain.VariantClicking: `Type: Clicking State.
Visual: The "%[1]s" subject in an active/pressed state (e.g. squished, glowing, sparks).
Centered.`,
	domain.VariantTyping: `Type: Text Select (I-Beam).
Visual: A tall, thin vertical bar or tool (like a sword, wand, or stick) matching the theme "%[1]s".
Must be vertical and centered.`,
}

// BuildPrompts returns one request per variant in generation order
func BuildPrompts(theme string) ([]domain.GenerationRequest, error) {
	if strings.TrimSpace(theme) == "" {
		return nil, domain.ErrEmptyTheme
	}

	preamble := fmt.Sprintf(stylePreamble, theme)
	variants := domain.Variants()
	reqs := make([]domain.GenerationRequest, 0, len(variants))
	for _, v := range variants {
		reqs = append(reqs, domain.GenerationRequest{
			Variant:    v,
			PromptText: preamble + fmt.Sprintf(variantDirectives[v], theme),
		})
	}
	return reqs, nil
}
