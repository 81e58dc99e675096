package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careernova/portfolio-engine/internal/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := types.PortfolioRecord{
		Slug:       "ada",
		Portfolio:  types.Portfolio{Name: "Ada Lovelace", Skills: []string{"Go"}},
		ResumeText: "resume body",
	}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestMemoryStoreGetUnknownSlug(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "ghost")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Slug)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, types.PortfolioRecord{Slug: "ada", ResumeText: "v1"}))
	require.NoError(t, s.Put(ctx, types.PortfolioRecord{Slug: "ada", ResumeText: "v2"}))

	got, err := s.Get(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.ResumeText)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, types.PortfolioRecord{Slug: "ada"}))
	require.NoError(t, s.Delete(ctx, "ada"))

	_, err := s.Get(ctx, "ada")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	err = s.Delete(ctx, "ada")
	assert.ErrorAs(t, err, &notFound)
}
