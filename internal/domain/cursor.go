package domain

import (
	"encoding/base64"
	"fmt"
)

// Variant is one of the five cursor roles of a set
type Variant int

const (
	VariantNormal Variant = iota
	VariantPointing
	VariantLoading
	VariantClicking
	VariantTyping

	// VariantCount is the fixed number of slots in a CursorSet
	VariantCount = 5
)

var variantNames = [VariantCount]string{"normal", "pointing", "loading", "clicking", "typing"}

// Variants returns every variant in generation order
func Variants() []Variant {
	return []Variant{VariantNormal, VariantPointing, VariantLoading, VariantClicking, VariantTyping}
}

func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

// Valid reports whether v is one of the known variants
func (v Variant) Valid() bool {
	return v >= 0 && v < VariantCount
}

// ParseVariant maps a lowercase variant name back to its Variant
func ParseVariant(name string) (Variant, error) {
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cursor variant: %q", name)
}

// ProcessedImage is a chroma-keyed PNG at the canonical cursor resolution
type ProcessedImage struct {
	Variant Variant
	PNG     []byte
}

// Base64 returns the PNG bytes base64 encoded
func (p *ProcessedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(p.PNG)
}

// DataURL returns the image as a data:image/png URL
func (p *ProcessedImage) DataURL() string {
	return "data:image/png;base64," + p.Base64()
}

// Outcome is the result of attempting a single variant
type Outcome struct {
	Variant Variant
	Image   *ProcessedImage
	Err     error
}

// Succeeded reports whether the outcome carries an image
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Image != nil
}

// CursorSet holds one slot per variant; a nil slot is absent
type CursorSet [VariantCount]*ProcessedImage

// Get returns the image for v, or nil when the slot is absent
func (s *CursorSet) Get(v Variant) *ProcessedImage {
	if !v.Valid() {
		return nil
	}
	return s[v]
}

// Count returns the number of populated slots
func (s *CursorSet) Count() int {
	n := 0
	for _, img := range s {
		if img != nil {
			n++
		}
	}
	return n
}

// Empty reports whether no slot is populated
func (s *CursorSet) Empty() bool {
	return s.Count() == 0
}

// Aggregate folds outcomes into a CursorSet. Failed outcomes leave their slot absent.
func Aggregate(outcomes []Outcome) CursorSet {
	var set CursorSet
	for _, o := range outcomes {
		if !o.Succeeded() || !o.Variant.Valid() {
			continue
		}
		set[o.Variant] = o.Image
	}
	return set
}
