package document

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Run("creates document", func(t *testing.T) {
		doc, err := NewDocument("Insurance Policy", "policy.pdf", "application/pdf", 120_000, "documents/abc/policy.pdf")
		require.NoError(t, err)
		assert.Equal(t, "Insurance Policy", doc.Title)
		assert.Equal(t, "policy.pdf", doc.FileName)
		assert.Equal(t, int64(120_000), doc.SizeBytes)
		assert.Nil(t, doc.CategoryID)

		events := doc.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDocumentCreated, events[0].EventType())
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewDocument("", "policy.pdf", "application/pdf", 1, "documents/abc/policy.pdf")
		assert.Error(t, err)
	})

	t.Run("fails with path separator in file name", func(t *testing.T) {
		_, err := NewDocument("Policy", "../etc/passwd", "text/plain", 1, "documents/abc/x")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "path separators")
	})

	t.Run("fails with negative size", func(t *testing.T) {
		_, err := NewDocument("Policy", "policy.pdf", "application/pdf", -1, "documents/abc/policy.pdf")
		assert.Error(t, err)
	})

	t.Run("fails when size exceeds cap", func(t *testing.T) {
		_, err := NewDocument("Policy", "policy.pdf", "application/pdf", maxDocumentSize+1, "documents/abc/policy.pdf")
		assert.Error(t, err)
	})

	t.Run("fails with empty storage key", func(t *testing.T) {
		_, err := NewDocument("Policy", "policy.pdf", "application/pdf", 1, " ")
		assert.Error(t, err)
	})
}

func TestDocument_Update(t *testing.T) {
	doc, err := NewDocument("Insurance Policy", "policy.pdf", "application/pdf", 1, "documents/abc/policy.pdf")
	require.NoError(t, err)
	doc.ClearDomainEvents()

	require.NoError(t, doc.Update("Insurance Policy 2026", "Renewed"))
	assert.Equal(t, "Insurance Policy 2026", doc.Title)
	assert.Equal(t, "Renewed", doc.Description)

	events := doc.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeDocumentUpdated, events[0].EventType())
}

func TestDocument_SetCategory(t *testing.T) {
	doc, err := NewDocument("Insurance Policy", "policy.pdf", "application/pdf", 1, "documents/abc/policy.pdf")
	require.NoError(t, err)

	categoryID := uuid.New()
	doc.SetCategory(&categoryID)
	require.NotNil(t, doc.CategoryID)
	assert.Equal(t, categoryID, *doc.CategoryID)

	doc.SetCategory(nil)
	assert.Nil(t, doc.CategoryID)
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		c, err := NewCategory("Contracts", "Signed agreements")
		require.NoError(t, err)
		assert.Equal(t, "Contracts", c.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "")
		assert.Error(t, err)
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("c", 101), "")
		assert.Error(t, err)
	})
}

func TestCategory_Update(t *testing.T) {
	c, err := NewCategory("Contracts", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Agreements", "Renamed"))
	assert.Equal(t, "Agreements", c.Name)

	assert.Error(t, c.Update("", ""))
}
