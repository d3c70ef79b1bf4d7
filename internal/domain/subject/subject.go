package subject

import (
	"errors"
	"strings"
)

// Subject is a named question set: the unit of import, sync and deletion.
// Its ID is the catalog key (or the source filename for explicit imports).
type Subject struct {
	ID           string
	Title        string
	Description  string
	Category     []string
	Difficulty   string
	Version      string
	CreatedAt    string
	UpdatedAt    string
	Author       string
	Source       string
	Tags         []string
	License      string
	NumQuestions int
}

// Metadata is the descriptive header of a question file.
type Metadata struct {
	Title       string
	Description string
	Category    []string
	Difficulty  string
	Version     string
	CreatedAt   string
	UpdatedAt   string
	Author      string
	Source      string
	Tags        []string
	License     string
}

// New builds a Subject from a file header. The title falls back to
// displayName, then to the id, so a subject always renders with a name.
func New(id, displayName string, meta Metadata, numQuestions int) (*Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("subject id cannot be empty")
	}

	title := meta.Title
	if title == "" {
		title = displayName
	}
	if title == "" {
		title = id
	}

	return &Subject{
		ID:           id,
		Title:        title,
		Description:  meta.Description,
		Category:     nonNil(meta.Category),
		Difficulty:   meta.Difficulty,
		Version:      meta.Version,
		CreatedAt:    meta.CreatedAt,
		UpdatedAt:    meta.UpdatedAt,
		Author:       meta.Author,
		Source:       meta.Source,
		Tags:         nonNil(meta.Tags),
		License:      meta.License,
		NumQuestions: numQuestions,
	}, nil
}

// Metadata returns the header fields for export.
func (s *Subject) Metadata() Metadata {
	return Metadata{
		Title:       s.Title,
		Description: s.Description,
		Category:    nonNil(s.Category),
		Difficulty:  s.Difficulty,
		Version:     s.Version,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Author:      s.Author,
		Source:      s.Source,
		Tags:        nonNil(s.Tags),
		License:     s.License,
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
