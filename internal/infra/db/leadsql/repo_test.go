package leadsql

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
)

func TestInsertSQL(t *testing.T) {
	id := uuid.MustParse("7b0c6a4e-1f7e-4c1a-9c36-0d2b7f0e5a11")
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	lead := leads.Lead{ID: id, Source: leads.SourceLogin, Email: "a@b.co", Phone: "9876543210", CreatedAt: at}

	t.Run("mysql", func(t *testing.T) {
		query, args, err := New(nil, sq.Question).insert(lead).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO leads (id,source,name,email,phone,created_at) VALUES (?,?,?,?,?,?)", query)
		assert.Equal(t, []any{id.String(), "login", "-", "a@b.co", "9876543210", at}, args)
	})

	t.Run("postgres", func(t *testing.T) {
		query, _, err := New(nil, sq.Dollar).insert(lead).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO leads (id,source,name,email,phone,created_at) VALUES ($1,$2,$3,$4,$5,$6)", query)
	})
}

func TestInsertSQL_FillsDefaults(t *testing.T) {
	_, args, err := New(nil, sq.Question).insert(leads.Lead{Source: leads.SourceContact, Name: "Asha"}).ToSql()
	require.NoError(t, err)
	_, parseErr := uuid.Parse(args[0].(string))
	assert.NoError(t, parseErr)
	assert.False(t, args[5].(time.Time).IsZero())
}

func TestRecentSQL(t *testing.T) {
	query, args, err := New(nil, sq.Dollar).recent(20).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, source, name, email, phone, created_at FROM leads ORDER BY created_at DESC, id DESC LIMIT 20", query)
	assert.Empty(t, args)
}
