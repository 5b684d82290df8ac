// Package clientstate keeps a local copy of the taxonomy in sync with a
// remote TagAPI. Mutations are applied locally first and rolled back when
// the remote call fails.
package clientstate

import (
	"context"
	"errors"
	"slices"
	"sync"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// ErrCommitInProgress is returned when a commit is requested while another
// one is still running
var ErrCommitInProgress = errors.New("a commit is already in progress")

// entry is one slot of the collection. Entries are never mutated in place,
// so a pointer identifies one version of one record.
type entry struct {
	tag domain.Tag
}

// Snapshot is a copy of the store state handed to subscribers
type Snapshot struct {
	Tags       []domain.Tag
	Loading    bool
	Err        error
	Git        *domain.GitStatus
	Committing bool
}

// Option configures a Store
type Option func(*Store)

// WithSearcher sets the searcher used by Filtered
func WithSearcher(s domain.Searcher) Option {
	return func(st *Store) {
		st.searcher = s
	}
}

// Store is the client-side state of one session
type Store struct {
	api      ports.TagAPI
	searcher domain.Searcher

	mu         sync.Mutex
	entries    []*entry
	loading    bool
	err        error
	git        *domain.GitStatus
	committing bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates an empty store backed by api
func New(api ports.TagAPI, opts ...Option) *Store {
	s := &Store{
		api:  api,
		subs: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after every state change. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Tags:       s.tagsLocked(),
		Loading:    s.loading,
		Err:        s.err,
		Committing: s.committing,
	}
	if s.git != nil {
		g := *s.git
		g.Changes = slices.Clone(s.git.Changes)
		snap.Git = &g
	}
	return snap
}

func (s *Store) tagsLocked() []domain.Tag {
	tags := make([]domain.Tag, len(s.entries))
	for i, e := range s.entries {
		tags[i] = e.tag.Clone()
	}
	return tags
}

// change runs fn under the state lock, then notifies subscribers outside it
func (s *Store) change(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Load replaces the collection with the server's. On failure the previous
// collection is kept and the error is recorded and returned.
func (s *Store) Load(ctx context.Context) error {
	s.change(func() {
		s.loading = true
		s.err = nil
	})

	tags, err := s.api.ListTags(ctx)

	s.change(func() {
		s.loading = false
		if err != nil {
			s.err = err
			return
		}
		entries := make([]*entry, len(tags))
		for i, t := range tags {
			entries[i] = &entry{tag: t}
		}
		s.entries = entries
	})
	return err
}

// Create appends a provisional record, then creates it remotely. On
// success the provisional record is replaced by the server's canonical
// one; on failure it is removed and the error returned.
func (s *Store) Create(ctx context.Context, category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	provisional := tag.Clone()
	provisional.Category = category
	p := &entry{tag: provisional}

	s.change(func() {
		s.entries = append(s.entries, p)
	})

	created, err := s.api.CreateTag(ctx, category, tag)
	if err != nil {
		s.change(func() {
			s.entries = slices.DeleteFunc(s.entries, func(e *entry) bool { return e == p })
		})
		return nil, err
	}

	s.change(func() {
		s.replace(p, provisional.Key(), &entry{tag: *created})
	})
	return created, nil
}

// Update merges patch into the local record, then updates it remotely. On
// failure the record's prior value is restored and the error returned. A
// record missing locally is updated remotely only.
func (s *Store) Update(ctx context.Context, category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	key := domain.Key{Category: category, ID: id}

	var (
		prev     *entry
		next     *entry
		mergeErr error
	)
	s.change(func() {
		i := s.indexLocked(key)
		if i < 0 {
			return
		}
		merged, err := s.entries[i].tag.Merge(patch)
		if err != nil {
			mergeErr = err
			return
		}
		prev = s.entries[i]
		next = &entry{tag: merged}
		s.entries[i] = next
	})
	if mergeErr != nil {
		return nil, &application.ValidationError{Field: "patch", Message: mergeErr.Error(), Err: mergeErr}
	}

	updated, err := s.api.UpdateTag(ctx, category, id, patch)
	if err != nil {
		if prev != nil {
			s.change(func() {
				s.replace(next, key, prev)
			})
		}
		return nil, err
	}

	s.change(func() {
		s.replace(next, key, &entry{tag: *updated})
	})
	return updated, nil
}

// Delete removes the record locally, then deletes it remotely. On failure
// the whole collection is restored to what it was before the call.
func (s *Store) Delete(ctx context.Context, category domain.Category, id string) error {
	key := domain.Key{Category: category, ID: id}

	var prev []*entry
	s.change(func() {
		prev = slices.Clone(s.entries)
		s.entries = slices.DeleteFunc(slices.Clone(s.entries), func(e *entry) bool {
			return e.tag.Key() == key
		})
	})

	if err := s.api.DeleteTag(ctx, category, id); err != nil {
		s.change(func() {
			s.entries = prev
		})
		return err
	}
	return nil
}

// replace swaps the entry old for e. When old is gone (or nil) the first
// record with key is replaced instead; when neither is present nothing
// changes.
func (s *Store) replace(old *entry, key domain.Key, e *entry) {
	if old != nil {
		if i := slices.Index(s.entries, old); i >= 0 {
			s.entries[i] = e
			return
		}
	}
	if i := s.indexLocked(key); i >= 0 {
		s.entries[i] = e
	}
}

func (s *Store) indexLocked(key domain.Key) int {
	return slices.IndexFunc(s.entries, func(e *entry) bool { return e.tag.Key() == key })
}

// Check validates a new tag against the local collection, with the same
// rules the server applies
func (s *Store) Check(candidate domain.Tag) domain.ValidationResult {
	return application.Validate(candidate, s.Tags())
}

// CheckUpdate validates the result of merging patch into the local record
func (s *Store) CheckUpdate(category domain.Category, id string, patch domain.Patch) (domain.ValidationResult, error) {
	key := domain.Key{Category: category, ID: id}
	all := s.Tags()

	stored, ok := domain.Find(all, key)
	if !ok {
		return domain.ValidationResult{}, &application.NotFoundError{Category: category, ID: id}
	}
	merged, err := stored.Merge(patch)
	if err != nil {
		return domain.ValidationResult{}, &application.ValidationError{Field: "patch", Message: err.Error(), Err: err}
	}
	merged.Category = category
	return application.ValidateUpdate(key, merged, all), nil
}

// GitStatus refreshes the git status. A failure is recorded in the status
// itself and also returned.
func (s *Store) GitStatus(ctx context.Context) (*domain.GitStatus, error) {
	status, err := s.api.GitStatus(ctx)
	if err != nil {
		status = &domain.GitStatus{Changes: []domain.FileChange{}, Error: err.Error()}
	}
	s.change(func() {
		s.git = status
	})
	return status, err
}

// Commit commits every pending change and refreshes the git status
func (s *Store) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	if err := application.ValidateRequired("message", message); err != nil {
		return nil, err
	}

	var busy bool
	s.change(func() {
		busy = s.committing
		s.committing = true
	})
	if busy {
		return nil, ErrCommitInProgress
	}
	defer s.change(func() {
		s.committing = false
	})

	status, err := s.api.Commit(ctx, message)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return s.GitStatus(ctx)
	}
	s.change(func() {
		s.git = status
	})
	return status, nil
}
