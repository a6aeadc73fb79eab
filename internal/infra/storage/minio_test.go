package storage

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_Presigned(t *testing.T) {
	// region set, so presigning needs no round trip to the server
	s, err := newStore(Options{
		Endpoint:  "objects.ayurconnect.test",
		Region:    "us-east-1",
		Bucket:    "shares",
		AccessKey: "access",
		SecretKey: "secret-secret",
		UseSSL:    true,
	})
	require.NoError(t, err)

	link, err := s.Link(t.Context(), "shares/medicine/abc.txt", 24*time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "objects.ayurconnect.test", u.Host)
	assert.Equal(t, "/shares/shares/medicine/abc.txt", u.Path)
	assert.Equal(t, "86400", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
