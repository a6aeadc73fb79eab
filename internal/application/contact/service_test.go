package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
	"github.com/bryanwahyu/ayurconnect/internal/domain/mail"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m mail.Message) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeLeads struct{ saved []leads.Lead }

func (f *fakeLeads) Save(_ context.Context, l leads.Lead) error {
	f.saved = append(f.saved, l)
	return nil
}

func (f *fakeLeads) Recent(context.Context, int) ([]leads.Lead, error) { return f.saved, nil }

func compose(inbox, name, email, phone string) mail.Message {
	return mail.Message{To: []string{inbox}, Subject: name, Body: email + " " + phone}
}

func TestSubmit(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	lr := &fakeLeads{}
	s := NewService(m, compose, "experts@ayurconnect.test", lr, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.Submit(t.Context(), Request{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"})

	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"experts@ayurconnect.test"}, m.sent[0].To)
	require.Len(t, lr.saved, 1)
	assert.Equal(t, leads.SourceContact, lr.saved[0].Source)
	assert.Equal(t, "Asha", lr.saved[0].Name)
}

func TestSubmit_NoInboxNoLeads(t *testing.T) {
	m := &fakeMailer{}
	s := NewService(m, compose, "", nil, nil)
	s.Submit(t.Context(), Request{Name: "Asha"})
	assert.Empty(t, m.sent)
}
