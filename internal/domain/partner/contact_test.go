package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("creates contact and folds email to lowercase", func(t *testing.T) {
		contact, err := NewContact("Jordan Reyes", "Jordan.Reyes@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "Jordan Reyes", contact.Name)
		assert.Equal(t, "jordan.reyes@example.com", contact.Email)

		events := contact.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeContactCreated, events[0].EventType())
	})

	t.Run("allows empty name", func(t *testing.T) {
		contact, err := NewContact("", "someone@example.com")
		require.NoError(t, err)
		assert.Empty(t, contact.Name)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewContact("Jordan Reyes", "  ")
		assert.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewContact("Jordan Reyes", "not-an-email")
		assert.Error(t, err)
	})
}

func TestContact_Update(t *testing.T) {
	contact, err := NewContact("Jordan Reyes", "jordan@example.com")
	require.NoError(t, err)

	require.NoError(t, contact.Update("Jordan R.", "555-000-1111", "Example Corp"))
	assert.Equal(t, "Jordan R.", contact.Name)
	assert.Equal(t, "555-000-1111", contact.Phone)
	assert.Equal(t, "Example Corp", contact.Organization)

	assert.Error(t, contact.Update("Jordan R.", "bad phone!", ""))
}

func TestContact_FillName(t *testing.T) {
	t.Run("fills blank name", func(t *testing.T) {
		contact, err := NewContact("", "jordan@example.com")
		require.NoError(t, err)

		assert.True(t, contact.FillName("Jordan Reyes"))
		assert.Equal(t, "Jordan Reyes", contact.Name)
	})

	t.Run("does not overwrite existing name", func(t *testing.T) {
		contact, err := NewContact("Jordan Reyes", "jordan@example.com")
		require.NoError(t, err)

		assert.False(t, contact.FillName("Someone Else"))
		assert.Equal(t, "Jordan Reyes", contact.Name)
	})

	t.Run("ignores blank input", func(t *testing.T) {
		contact, err := NewContact("", "jordan@example.com")
		require.NoError(t, err)

		assert.False(t, contact.FillName("   "))
		assert.Empty(t, contact.Name)
	})
}

func TestContact_DisplayName(t *testing.T) {
	named, err := NewContact("Jordan Reyes", "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", named.DisplayName())

	unnamed, err := NewContact("", "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", unnamed.DisplayName())
}
