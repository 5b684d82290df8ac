package clientstate

import "tagmanager/internal/domain"

// Tags returns a copy of the collection in store order
func (s *Store) Tags() []domain.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tagsLocked()
}

// Tag returns the local record with key
func (s *Store) Tag(key domain.Key) (domain.Tag, bool) {
	return domain.Find(s.Tags(), key)
}

// ByCategory groups the collection by category
func (s *Store) ByCategory() map[domain.Category][]domain.Tag {
	return domain.GroupByCategory(s.Tags())
}

// CategoryCounts counts the records of every category
func (s *Store) CategoryCounts() map[domain.Category]int {
	return domain.CountByCategory(s.Tags())
}

// Filtered applies f to the collection
func (s *Store) Filtered(f domain.Filter) []domain.Tag {
	return domain.Apply(s.Tags(), f, s.searcher)
}
