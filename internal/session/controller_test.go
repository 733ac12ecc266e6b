package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/mockserver"
	"github.com/five82/flashdeck/internal/notify"
)

func newController(t *testing.T, opts mockserver.Options, timeout time.Duration) (*Controller, *mockserver.Server, *notify.Recorder) {
	t.Helper()
	mock := mockserver.New(opts)
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(backend.Options{
		BaseURL:       srv.URL + "/api/v1",
		HealthTimeout: time.Second,
		UploadTimeout: timeout,
	})
	require.NoError(t, err)

	rec := &notify.Recorder{}
	return NewController(client, rec), mock, rec
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n"), 0o644))
	return path
}

func TestController_GenerateAndReview(t *testing.T) {
	c, mock, rec := newController(t, mockserver.Options{Cards: []mockserver.Card{
		{Question: "What is 2+2?", Answer: "4"},
		{Question: "Capital of France?", Answer: "Paris"},
	}}, 5*time.Second)

	require.True(t, c.CheckConnectivity(context.Background()))
	require.True(t, c.SelectFile(writePDF(t, "notes.pdf")))
	require.NoError(t, c.Generate(context.Background()))

	s := c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, "Card 1 of 2", s.Position())
	c.ToggleAnswer()
	assert.True(t, c.State().AnswerVisible)
	c.Next()
	s = c.State()
	assert.Equal(t, "Card 2 of 2", s.Position())
	assert.False(t, s.AnswerVisible)
	c.Previous()
	assert.Equal(t, "Card 1 of 2", c.State().Position())

	uploads := mock.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "notes.pdf", uploads[0].FileName)
	assert.Equal(t, document.PDFMediaType, uploads[0].MediaType)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Generated 2 flashcards", last.Message)
}

func TestController_Timeout(t *testing.T) {
	c, _, rec := newController(t, mockserver.Options{Delay: 2 * time.Second}, 50*time.Millisecond)
	require.True(t, c.CheckConnectivity(context.Background()))
	require.True(t, c.SelectFile(writePDF(t, "notes.pdf")))

	err := c.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, backend.KindTimeout, backend.KindOf(err))

	s := c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, "Request timed out. Please try again later.", s.Err)
	assert.Empty(t, s.Cards)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Error, last.Kind)
}

func TestController_ServerDetail(t *testing.T) {
	c, _, _ := newController(t, mockserver.Options{Status: http.StatusBadRequest, Detail: "Only PDF files are allowed"}, 5*time.Second)
	require.True(t, c.CheckConnectivity(context.Background()))
	require.True(t, c.SelectFile(writePDF(t, "notes.pdf")))

	require.Error(t, c.Generate(context.Background()))
	assert.Equal(t, "Server error: Only PDF files are allowed", c.State().Err)
}

func TestController_Blockers(t *testing.T) {
	c, mock, _ := newController(t, mockserver.Options{HealthStatus: http.StatusServiceUnavailable}, 5*time.Second)

	err := c.Generate(context.Background())
	assert.True(t, errors.Is(err, ErrNoFile))

	assert.False(t, c.CheckConnectivity(context.Background()))
	require.True(t, c.SelectFile(writePDF(t, "notes.pdf")))
	err = c.Generate(context.Background())
	assert.True(t, errors.Is(err, ErrDisconnected))
	assert.Empty(t, mock.Uploads(), "nothing is sent while disconnected")
}

func TestController_SelectNonPDF(t *testing.T) {
	c, _, rec := newController(t, mockserver.Options{}, 5*time.Second)
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just some text\n"), 0o644))

	assert.False(t, c.SelectFile(path))
	assert.Nil(t, c.State().File)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Invalid file type", last.Title)
}

func TestController_ReselectGrownFileRejected(t *testing.T) {
	c, _, _ := newController(t, mockserver.Options{}, 5*time.Second)
	path := writePDF(t, "notes.pdf")
	require.True(t, c.SelectFile(path))
	small := c.State().File.Size

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, document.MaxSize))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.False(t, c.SelectFile(path))
	s := c.State()
	assert.Equal(t, "File too large. Maximum file size is 10MB", s.Err)
	require.NotNil(t, s.File)
	assert.Equal(t, small, s.File.Size)
}

func TestController_SelectMissingFile(t *testing.T) {
	c, _, _ := newController(t, mockserver.Options{}, 5*time.Second)
	assert.False(t, c.SelectFile(filepath.Join(t.TempDir(), "missing.pdf")))
	assert.Contains(t, c.State().Err, "Could not read")
}

func TestController_LoadingClearedWhenFileVanishes(t *testing.T) {
	c, mock, _ := newController(t, mockserver.Options{}, 5*time.Second)
	require.True(t, c.CheckConnectivity(context.Background()))
	path := writePDF(t, "notes.pdf")
	require.True(t, c.SelectFile(path))
	require.NoError(t, os.Remove(path))

	require.Error(t, c.Generate(context.Background()))
	s := c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, msgUnexpected, s.Err)
	assert.Empty(t, mock.Uploads())
}

func TestController_WithInspector(t *testing.T) {
	c := NewController(nil, nil, WithInspector(func(path string) (document.File, error) {
		return document.File{Path: path, Name: "fake.pdf", Size: 1, MediaType: document.PDFMediaType}, nil
	}))
	assert.True(t, c.SelectFile("/anywhere/fake.pdf"))
	assert.Equal(t, "fake.pdf", c.State().File.Name)
}
