package domain_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
)

func TestThreadNaming(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 30, 15, 0, time.UTC)
	slug, name := domain.ThreadNaming(now, 42)

	slugPattern := regexp.MustCompile(`^2026-08-31-09-30-15-[0-9a-f]{8}$`)
	if !slugPattern.MatchString(slug) {
		t.Errorf("slug %q does not match %s", slug, slugPattern)
	}
	if want := "ThreatFox IOCs 2026-08-31 (42 indicators)"; name != want {
		t.Errorf("name = %q, want %q", name, want)
	}
}

func TestThreadNamingSlugsUnique(t *testing.T) {
	now := time.Now()
	a, _ := domain.ThreadNaming(now, 0)
	b, _ := domain.ThreadNaming(now, 0)
	if a == b {
		t.Fatalf("two slugs from the same instant collided: %q", a)
	}
}

func TestFallbackThreadSlug(t *testing.T) {
	slug := domain.FallbackThreadSlug()
	if len(slug) != 36 {
		t.Fatalf("fallback slug %q is not a UUID", slug)
	}
	if slug == domain.FallbackThreadSlug() {
		t.Fatal("fallback slugs must be unique")
	}
}
