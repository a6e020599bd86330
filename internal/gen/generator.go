package gen

import (
	"context"
	"errors"
)

// FallbackDescription is returned whenever generation is unconfigured
// or unavailable. The caller shows it inline instead of failing the
// offer form.
const FallbackDescription = "AI description is unavailable right now. " +
	"Describe your service, who it helps, and what makes it stand out."

// ErrUnavailable means the generation provider is unreachable or
// misconfigured. Never retried automatically; the user re-submits.
var ErrUnavailable = errors.New("gen: description provider unavailable")

// Generator produces a short marketing description for an offer.
type Generator interface {
	Generate(ctx context.Context, title, category string) (string, error)
}

// Describe runs the generator and degrades to the static fallback when
// it is missing or fails. The second return reports whether the text
// was generated (false = fallback).
func Describe(ctx context.Context, g Generator, title, category string) (string, bool) {
	if g == nil {
		return FallbackDescription, false
	}
	text, err := g.Generate(ctx, title, category)
	if err != nil || text == "" {
		return FallbackDescription, false
	}
	return text, true
}
