package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	st, err := New(context.Background(), Config{Driver: DriverLocal, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, DriverLocal, st.Driver())

	url, err := st.Put(context.Background(), "reports/ASCOMP_x.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/reports/ASCOMP_x.pdf", url)

	b, err := os.ReadFile(filepath.Join(dir, "reports", "ASCOMP_x.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestLocalPutRejectsEscapes(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "a/../../b", "."} {
		_, err := st.Put(context.Background(), key, "text/plain", nil)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalPutCancelled(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Put(ctx, "a.txt", "text/plain", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanKey(t *testing.T) {
	k, err := CleanKey(`signatures\client.png`)
	require.NoError(t, err)
	assert.Equal(t, "signatures/client.png", k)

	k, err = CleanKey("/a//b/./c.txt")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.txt", k)
}

func TestS3URL(t *testing.T) {
	s := &S3Store{bucket: "ascomp", region: "ap-south-1"}
	assert.Equal(t, "https://ascomp.s3.ap-south-1.amazonaws.com/r/x.pdf", s.URL("r/x.pdf"))

	s.endpoint = "http://localhost:9000"
	assert.Equal(t, "http://localhost:9000/ascomp/r/x.pdf", s.URL("r/x.pdf"))
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
