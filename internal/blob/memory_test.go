package blob

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutListDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entry, err := s.Put(ctx, "dir/notas aula.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(entry.Pathname, "-notas aula.pdf"))
	assert.EqualValues(t, 8, entry.Size)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.URL, entries[0].URL)

	require.NoError(t, s.Delete(ctx, entry.URL))
	assert.ErrorIs(t, s.Delete(ctx, entry.URL), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "https://elsewhere.example/x"), ErrInvalidURL)
}

func TestObjectKey(t *testing.T) {
	assert.True(t, strings.HasSuffix(objectKey(`C:\fotos\a.png`), "-a.png"))
	assert.True(t, strings.HasSuffix(objectKey(""), "-arquivo"))
	assert.NotEqual(t, objectKey("a.png"), objectKey("a.png"))
}
