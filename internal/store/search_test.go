package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Search(t *testing.T) {
	s := NewStore(setupTestDB(t))

	standup := testSnapshot("Standup")
	standup.Description = "daily sync"
	retro := testSnapshot("Retro")
	retro.Request.Title = "Sprint review"
	retro.Tags = []string{"agile"}
	retro.Favorite = true
	spec := testSnapshot("Design doc")
	spec.Request.Abbreviation = "DOC"
	spec.Request.Title = "Architecture"
	for _, snap := range []*Snapshot{standup, retro, spec} {
		require.NoError(t, s.Save(snap))
	}

	tests := []struct {
		name  string
		query string
		opts  SearchOptions
		want  []string
	}{
		{"name", "stand", SearchOptions{}, []string{"Standup"}},
		{"title", "SPRINT", SearchOptions{}, []string{"Retro"}},
		{"description", "sync", SearchOptions{}, []string{"Standup"}},
		{"tag", "agile", SearchOptions{}, []string{"Retro"}},
		{"abbreviation", "doc", SearchOptions{}, []string{"Design doc"}},
		{"favorites only", "e", SearchOptions{Favorites: true}, []string{"Retro"}},
		{"empty lists all", "", SearchOptions{}, []string{"Design doc", "Retro", "Standup"}},
		{"limit", "", SearchOptions{Limit: 1}, []string{"Design doc"}},
		{"fuzzy fallback", "Standupp", SearchOptions{}, []string{"Standup"}},
		{"no match", "zzzz", SearchOptions{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(tt.query, tt.opts)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestStore_SearchEscapesWildcards(t *testing.T) {
	s := NewStore(setupTestDB(t))
	require.NoError(t, s.Save(testSnapshot("100% done")))
	require.NoError(t, s.Save(testSnapshot("1000 done")))

	got, err := s.Search("100%", SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% done"}, names(got))
}

func TestStore_Suggest(t *testing.T) {
	s := NewStore(setupTestDB(t))
	require.NoError(t, s.Save(testSnapshot("Café notes")))
	require.NoError(t, s.Save(testSnapshot("Budget")))

	got, err := s.Suggest("cafe_notes", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Café notes"}, got)
}

func TestFoldName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Café", "cafe"},
		{"Meeting_Notes-v2", "meeting notes v2"},
		{"  many   spaces ", "many spaces"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, foldName(tt.in))
		})
	}
}
