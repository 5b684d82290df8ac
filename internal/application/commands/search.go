package commands

import (
	"context"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// SearchTagsCommand filters, searches and sorts the taxonomy
type SearchTagsCommand struct {
	repo     ports.TagRepository
	searcher domain.Searcher
	Filter   domain.Filter
}

// NewSearchTagsCommand creates a new SearchTagsCommand
func NewSearchTagsCommand(repo ports.TagRepository, searcher domain.Searcher, filter domain.Filter) *SearchTagsCommand {
	return &SearchTagsCommand{
		repo:     repo,
		searcher: searcher,
		Filter:   filter,
	}
}

// Validate checks the filter values
func (c *SearchTagsCommand) Validate() error {
	if c.Filter.Category != "" {
		category, err := application.ValidateCategory(string(c.Filter.Category))
		if err != nil {
			return err
		}
		c.Filter.Category = category
	}
	if d := c.Filter.Difficulty; d != "" && d != domain.FilterAll && !domain.Difficulty(d).Valid() {
		return &application.ValidationError{Field: "difficulty", Message: "invalid difficulty: " + d}
	}
	if s := c.Filter.SortBy; s != "" && s != domain.SortByName && s != domain.SortByID && s != domain.SortByDifficulty {
		return &application.ValidationError{Field: "sort", Message: "invalid sort field: " + string(s)}
	}
	return nil
}

// Execute runs the search command
func (c *SearchTagsCommand) Execute(ctx context.Context) ([]domain.Tag, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	all, err := c.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return domain.Apply(all, c.Filter, c.searcher), nil
}
