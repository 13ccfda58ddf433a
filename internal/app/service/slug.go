package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/linktrove/linktrove/internal/app/repository"
	infraprom "github.com/linktrove/linktrove/internal/infra/prometheus"
)

// maxSlugAttempts bounds the suffix retry loop; in practice collisions stop
// after one or two suffixes.
const maxSlugAttempts = 50

// NormalizeSlug derives the base slug from a display title: lowercase, strip
// everything outside [a-z0-9 -], collapse each whitespace run into a single
// hyphen, keep literal hyphens as-is, trim edge hyphens.
func NormalizeSlug(title string) string {
	var b strings.Builder
	pendingSpace := false

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			if pendingSpace {
				b.WriteByte('-')
				pendingSpace = false
			}
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

// SlugCandidate returns the attempt-th candidate for a base: the base
// itself, then base-1, base-2, ...
func SlugCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// SlugAllocator hands out unique slugs for one namespace (linktrees,
// articles, article categories each have their own). A bloom filter seeded
// from existing rows lets definitely-free candidates skip the DB probe;
// actual uniqueness rests on the DB unique index, with a retry on conflict.
type SlugAllocator struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewSlugAllocator seeds the filter with all currently allocated slugs.
func NewSlugAllocator(seed []string) *SlugAllocator {
	capacity := uint(len(seed)) * 2
	if capacity < 1024 {
		capacity = 1024
	}

	filter := bloom.NewWithEstimates(capacity, 0.01)
	for _, s := range seed {
		filter.AddString(s)
	}

	return &SlugAllocator{filter: filter}
}

// MightExist reports whether slug could already be taken. False is
// definitive; true still needs a DB probe.
func (a *SlugAllocator) MightExist(slug string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter.TestString(slug)
}

// Observe records a slug that has been persisted.
func (a *SlugAllocator) Observe(slug string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.AddString(slug)
}

// Allocate derives the base slug from title and walks candidates until
// persist succeeds. exists is the namespace's DB probe (excluding the
// entity's own row on rename); persist attempts the write with the
// candidate and returns repository.ErrSlugTaken to move to the next suffix.
func (a *SlugAllocator) Allocate(
	ctx context.Context,
	title string,
	exists func(ctx context.Context, slug string) (bool, error),
	persist func(ctx context.Context, slug string) error,
) (string, error) {
	base := NormalizeSlug(title)

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := SlugCandidate(base, attempt)

		if a.MightExist(candidate) {
			taken, err := exists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("probe slug %q: %w", candidate, err)
			}
			if taken {
				continue
			}
		}

		err := persist(ctx, candidate)
		if errors.Is(err, repository.ErrSlugTaken) {
			// Lost the race to a concurrent writer; the unique index is
			// authoritative, take the next suffix.
			infraprom.SlugConflictRetries.Inc()
			a.Observe(candidate)
			continue
		}
		if err != nil {
			return "", err
		}

		a.Observe(candidate)
		return candidate, nil
	}

	return "", ErrSlugExhausted
}
