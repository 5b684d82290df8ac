package domain

import (
	"slices"
	"time"
)

// ReferenceKind names the field through which one tag points at another
type ReferenceKind string

const (
	RefPrerequisite  ReferenceKind = "prerequisite"
	RefRelated       ReferenceKind = "related"
	RefLanguageScope ReferenceKind = "language_scope"
)

// Reference is a cached edge: Source names TargetID in one of its list fields
type Reference struct {
	Source   Key           `json:"source"`
	TargetID string        `json:"target_id"`
	Kind     ReferenceKind `json:"kind"`
}

// IndexStats holds statistics from an index rebuild
type IndexStats struct {
	Tags       int           `json:"tags"`
	References int           `json:"references"`
	Duration   time.Duration `json:"duration"`
}

// ReferencesOf lists the outgoing references of a single tag
func ReferencesOf(t Tag) []Reference {
	var refs []Reference
	add := func(ids []string, kind ReferenceKind) {
		for _, id := range ids {
			if id == "" {
				continue
			}
			refs = append(refs, Reference{Source: t.Key(), TargetID: id, Kind: kind})
		}
	}
	add(t.Prerequisites, RefPrerequisite)
	add(t.Related, RefRelated)
	add(t.LanguageScope, RefLanguageScope)
	return refs
}

// FindReferences scans tags for references to targetID. It is the
// in-memory equivalent of the sqlite index query.
func FindReferences(tags []Tag, targetID string) []Reference {
	refs := []Reference{}
	for _, t := range tags {
		for _, r := range ReferencesOf(t) {
			if r.TargetID == targetID {
				refs = append(refs, r)
			}
		}
	}
	slices.SortStableFunc(refs, compareReferences)
	return refs
}

func compareReferences(a, b Reference) int {
	if a.Source.Category != b.Source.Category {
		if a.Source.Category < b.Source.Category {
			return -1
		}
		return 1
	}
	if a.Source.ID != b.Source.ID {
		if a.Source.ID < b.Source.ID {
			return -1
		}
		return 1
	}
	switch {
	case a.Kind < b.Kind:
		return -1
	case a.Kind > b.Kind:
		return 1
	}
	return 0
}
