package docnote

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hay-kot/docnote/internal/core/anchor"
	"github.com/hay-kot/docnote/internal/core/config"
	"github.com/hay-kot/docnote/internal/core/logging"
	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/core/source"
	"github.com/rs/zerolog"
)

// ErrNoAnnotations is returned by Clean when a file has nothing to remove.
var ErrNoAnnotations = errors.New("no annotations for file")

// Status describes what an update did to one annotation.
type Status string

const (
	StatusMatched  Status = "matched"
	StatusMoved    Status = "moved"
	StatusOrphaned Status = "orphaned"

	// StatusBlocked marks an annotation whose context was found above the
	// threshold at a line that another annotation keeps. It stays on its old
	// line with its old context.
	StatusBlocked Status = "blocked"
)

// Entry is an annotation together with the key it is stored under.
type Entry struct {
	Key        note.Key
	Annotation note.Annotation
}

// Outcome reports the result of re-anchoring one annotation. Lines are
// zero-based. To is the new line for moved annotations and the wanted line
// for blocked ones; otherwise it equals From.
type Outcome struct {
	ID     string  `json:"id"`
	From   int     `json:"from"`
	To     int     `json:"to"`
	Score  float64 `json:"score"`
	Status Status  `json:"status"`
}

// UpdateResult summarises an update of one file.
type UpdateResult struct {
	Path      string    `json:"path"`
	Processed int       `json:"processed"`
	Updated   int       `json:"updated"`
	Orphaned  int       `json:"orphaned"`
	Blocked   int       `json:"blocked"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Service binds annotations to file lines and keeps them bound as files change.
type Service struct {
	store     note.Store
	finder    anchor.Reanchorer
	readLines func(path string) ([]string, error)
	now       func() time.Time
	newID     func() string
	log       zerolog.Logger
}

// NewService creates a Service backed by store, using the context radius and
// similarity threshold from cfg.
func NewService(store note.Store, cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		finder:    anchor.New(cfg.ContextLines, cfg.SimilarityThreshold),
		readLines: source.ReadLines,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       log,
	}
}

// normalizePath returns the absolute, cleaned form of path used in keys.
func normalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}

// Put binds text to the zero-based line of the file at path, capturing the
// line's current context. An existing annotation at the same key is
// overwritten but keeps its ID and creation time.
func (s *Service) Put(ctx context.Context, path string, line int, text string) (Entry, error) {
	abs, err := normalizePath(path)
	if err != nil {
		return Entry{}, err
	}

	lines, err := s.readLines(abs)
	if err != nil {
		return Entry{}, err
	}

	window, err := anchor.Extract(lines, line, s.finder.Radius)
	if err != nil {
		return Entry{}, fmt.Errorf("line %d of %s (%d lines): %w", line+1, path, len(lines), err)
	}

	key := note.Key{Path: abs, Line: line}
	now := s.now()

	a, err := s.store.Get(ctx, key)
	switch {
	case errors.Is(err, note.ErrNotFound):
		a = note.Annotation{ID: s.newID(), CreatedAt: now}
	case err != nil:
		return Entry{}, fmt.Errorf("get %s: %w", key.Location(), err)
	}

	a.Context = window
	a.Text = text
	a.UpdatedAt = now

	if err := s.store.Put(ctx, key, a); err != nil {
		return Entry{}, fmt.Errorf("put %s: %w", key.Location(), err)
	}

	s.log.Debug().Ctx(ctx).Str("id", a.ID).Int("line", line).Msg("annotation saved")
	return Entry{Key: key, Annotation: a}, nil
}

// Get returns the annotation at the zero-based line of path.
// Returns note.ErrNotFound if there is none.
func (s *Service) Get(ctx context.Context, path string, line int) (Entry, error) {
	abs, err := normalizePath(path)
	if err != nil {
		return Entry{}, err
	}

	key := note.Key{Path: abs, Line: line}
	a, err := s.store.Get(ctx, key)
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", key.Location(), err)
	}

	return Entry{Key: key, Annotation: a}, nil
}

// Remove deletes the annotation at the zero-based line of path.
// Returns note.ErrNotFound if there is none.
func (s *Service) Remove(ctx context.Context, path string, line int) error {
	abs, err := normalizePath(path)
	if err != nil {
		return err
	}

	key := note.Key{Path: abs, Line: line}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key.Location(), err)
	}

	return nil
}

// Clean deletes every annotation of path and returns how many were removed.
// Returns ErrNoAnnotations if the file had none.
func (s *Service) Clean(ctx context.Context, path string) (int, error) {
	abs, err := normalizePath(path)
	if err != nil {
		return 0, err
	}

	keys, err := s.store.KeysWithPrefix(ctx, abs)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrNoAnnotations)
	}

	removed := 0
	for _, key := range keys {
		err := s.store.Delete(ctx, key)
		if errors.Is(err, note.ErrNotFound) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("delete %s: %w", key.Location(), err)
		}
		removed++
	}

	return removed, nil
}

// List returns annotations whose path matches pattern, sorted by path then
// line. An empty pattern lists everything. Patterns may use doublestar
// globs ("src/**/*.go") and are resolved against the working directory.
func (s *Service) List(ctx context.Context, pattern string) ([]Entry, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	match := func(string) bool { return true }
	if pattern != "" {
		if match, err = pathMatcher(pattern); err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		if !match(key.Path) {
			continue
		}

		a, err := s.store.Get(ctx, key)
		if errors.Is(err, note.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key.Location(), err)
		}
		entries = append(entries, Entry{Key: key, Annotation: a})
	}

	return entries, nil
}

// AnnotatedPaths returns the distinct annotated files matching any of the
// patterns, sorted. A pattern without glob characters is returned as is, so
// updating a file that has no annotations yet is not an error.
func (s *Service) AnnotatedPaths(ctx context.Context, patterns []string) ([]string, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			abs, err := normalizePath(pattern)
			if err != nil {
				return nil, err
			}
			seen[abs] = true
			continue
		}

		match, err := pathMatcher(pattern)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if match(key.Path) {
				seen[key.Path] = true
			}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}

// pathMatcher builds a predicate for absolute annotated paths from a glob or
// literal path relative to the working directory.
func pathMatcher(pattern string) (func(string) bool, error) {
	abs, err := normalizePath(pattern)
	if err != nil {
		return nil, err
	}

	if !hasMeta(pattern) {
		return func(p string) bool { return p == abs }, nil
	}

	if !doublestar.ValidatePathPattern(abs) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	return func(p string) bool {
		ok, _ := doublestar.PathMatch(abs, p)
		return ok
	}, nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// relocation is an annotation whose recorded context was found at a new line.
type relocation struct {
	key   note.Key
	ann   note.Annotation
	match anchor.Match
}

// Update re-anchors every annotation of path against the file's current
// content.
//
// Annotations whose context still matches at their stored line are left
// alone. The rest are searched for with the reanchorer starting from their
// stored line. Annotations that cannot be found stay at their old key with
// their old context and are reported as orphaned. Annotations found at a line
// another annotation keeps stay put as well and are reported as blocked; the
// block clears once the other annotation is removed or moves away.
//
// Deletes and puts of moved annotations are applied as one batch when the
// store implements note.Batcher, so a failed write leaves the file's
// annotations as they were.
func (s *Service) Update(ctx context.Context, path string) (UpdateResult, error) {
	abs, err := normalizePath(path)
	if err != nil {
		return UpdateResult{}, err
	}
	ctx = logging.WithFile(ctx, abs)

	res := UpdateResult{Path: abs}

	keys, err := s.store.KeysWithPrefix(ctx, abs)
	if err != nil {
		return res, err
	}
	if len(keys) == 0 {
		return res, nil
	}

	lines, err := s.readLines(abs)
	if err != nil {
		return res, err
	}

	// held marks lines that keep an annotation after this pass.
	held := make(map[int]bool)
	var moves []relocation

	for _, key := range keys {
		a, err := s.store.Get(ctx, key)
		if errors.Is(err, note.ErrNotFound) {
			s.log.Debug().Ctx(ctx).Int("line", key.Line).Msg("annotation vanished during update")
			continue
		}
		if err != nil {
			return res, fmt.Errorf("get %s: %w", key.Location(), err)
		}
		res.Processed++

		current, err := anchor.Extract(lines, key.Line, s.finder.Radius)
		if err == nil && current.Equal(a.Context) {
			held[key.Line] = true
			res.Outcomes = append(res.Outcomes, Outcome{ID: a.ID, From: key.Line, To: key.Line, Score: 1, Status: StatusMatched})
			continue
		}

		m, ok := s.finder.Find(a.Context, lines, key.Line)
		if !ok {
			held[key.Line] = true
			res.Outcomes = append(res.Outcomes, Outcome{ID: a.ID, From: key.Line, To: key.Line, Status: StatusOrphaned})
			s.log.Debug().Ctx(ctx).Int("line", key.Line).Msg("annotation orphaned")
			continue
		}

		moves = append(moves, relocation{key: key, ann: a, match: m})
	}

	moves, blocked := resolveConflicts(moves, held)
	for _, b := range blocked {
		res.Outcomes = append(res.Outcomes, Outcome{
			ID: b.ann.ID, From: b.key.Line, To: b.match.Line, Score: b.match.Score, Status: StatusBlocked,
		})
		s.log.Debug().Ctx(ctx).Int("line", b.key.Line).Int("wanted", b.match.Line).Msg("annotation blocked")
	}

	now := s.now()
	moved := make([]Outcome, 0, len(moves))
	err = s.batch(ctx, func(tx note.Store) error {
		// Vacate every old key before writing new ones so shifted
		// annotations never overwrite each other.
		for _, mv := range moves {
			if err := tx.Delete(ctx, mv.key); err != nil && !errors.Is(err, note.ErrNotFound) {
				return fmt.Errorf("delete %s: %w", mv.key.Location(), err)
			}
		}

		for _, mv := range moves {
			window, err := anchor.Extract(lines, mv.match.Line, s.finder.Radius)
			if err != nil {
				return err
			}

			a := mv.ann
			a.Context = window
			a.UpdatedAt = now

			key := note.Key{Path: abs, Line: mv.match.Line}
			if err := tx.Put(ctx, key, a); err != nil {
				return fmt.Errorf("put %s: %w", key.Location(), err)
			}

			moved = append(moved, Outcome{
				ID: a.ID, From: mv.key.Line, To: mv.match.Line, Score: mv.match.Score, Status: StatusMoved,
			})
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	for _, o := range moved {
		s.log.Debug().Ctx(ctx).
			Int("from", o.From).
			Int("to", o.To).
			Float64("score", o.Score).
			Msg("annotation moved")
	}
	res.Updated = len(moved)
	res.Outcomes = append(res.Outcomes, moved...)

	for _, o := range res.Outcomes {
		switch o.Status {
		case StatusOrphaned:
			res.Orphaned++
		case StatusBlocked:
			res.Blocked++
		}
	}

	slices.SortFunc(res.Outcomes, func(a, b Outcome) int { return cmp.Compare(a.From, b.From) })
	return res, nil
}

// batch runs fn atomically when the store supports it. Stores without
// batching get fn applied directly.
func (s *Service) batch(ctx context.Context, fn func(tx note.Store) error) error {
	if b, ok := s.store.(note.Batcher); ok {
		return b.Batch(ctx, fn)
	}
	return fn(s.store)
}

// resolveConflicts keeps the one-annotation-per-line invariant. Moves are
// considered in stored line order and a move whose target is already held
// is demoted; the demoted annotation stays on its old line, which may in turn
// block a move considered earlier, so demotion repeats until stable.
func resolveConflicts(moves []relocation, held map[int]bool) (kept, demoted []relocation) {
	kept = moves
	for {
		claimed := maps.Clone(held)
		blocked := -1
		for i, mv := range kept {
			if claimed[mv.match.Line] {
				blocked = i
				break
			}
			claimed[mv.match.Line] = true
		}
		if blocked < 0 {
			return kept, demoted
		}

		mv := kept[blocked]
		held[mv.key.Line] = true
		demoted = append(demoted, mv)
		kept = slices.Delete(slices.Clone(kept), blocked, blocked+1)
	}
}
