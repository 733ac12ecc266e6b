package backend

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/mockserver"
)

func newTestClient(t *testing.T, baseURL string, opts Options) *Client {
	t.Helper()
	opts.BaseURL = baseURL
	c, err := NewClient(opts)
	require.NoError(t, err)
	return c
}

func pdfUpload(name string) Upload {
	body := []byte("%PDF-1.4\n")
	return Upload{Name: name, MediaType: document.PDFMediaType, Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func requireKind(t *testing.T, err error, want Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var be *Error
	require.True(t, errors.As(err, &be), "error %v is not *backend.Error", err)
	require.Equal(t, want, be.Kind, "error: %v", err)
	return be
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, u.String())

	u, err = parseBaseURL("example.com:8000/api/v1/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:8000/api/v1", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func TestClient_HealthAndGenerate(t *testing.T) {
	backend := mockserver.New(mockserver.Options{Cards: []mockserver.Card{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}})
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL+"/api/v1/", Options{})
	assert.Equal(t, srv.URL+"/api/v1", c.BaseURL())

	require.NoError(t, c.Health(context.Background()))

	cards, err := c.Generate(context.Background(), pdfUpload("notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []Flashcard{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}, cards)

	uploads := backend.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "notes.pdf", uploads[0].FileName)
	assert.Equal(t, document.PDFMediaType, uploads[0].MediaType)
	assert.NotEmpty(t, uploads[0].RequestID)
}

func TestClient_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, Options{})
	require.NoError(t, c.Health(context.Background()))
	assert.True(t, strings.HasPrefix(gotUA, "flashdeck/"), "User-Agent = %q", gotUA)
}

func TestClient_HealthNon200(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.Options{HealthStatus: http.StatusServiceUnavailable}))
	t.Cleanup(srv.Close)

	err := newTestClient(t, srv.URL+"/api/v1", Options{}).Health(context.Background())
	be := requireKind(t, err, KindServer)
	assert.Equal(t, http.StatusServiceUnavailable, be.Status)
}

func TestClient_ServerErrorSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.Options{
		Status: http.StatusBadRequest,
		Detail: "No text could be extracted from the PDF",
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL+"/api/v1", Options{}).Generate(context.Background(), pdfUpload("scan.pdf"))
	be := requireKind(t, err, KindServer)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, "No text could be extracted from the PDF", be.Detail)
	assert.Equal(t, "No text could be extracted from the PDF", err.Error())
}

func TestClient_ServerErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.Options{Status: http.StatusInternalServerError}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL+"/api/v1", Options{}).Generate(context.Background(), pdfUpload("a.pdf"))
	be := requireKind(t, err, KindServer)
	assert.Empty(t, be.Detail)
	assert.Equal(t, "Request failed with status code 500", err.Error())
}

func TestClient_MalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{not-json"},
		{"missing field", `{"cards": []}`},
		{"empty list", `{"flashcards": []}`},
		{"bare array", `[{"question":"Q","answer":"A"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(mockserver.New(mockserver.Options{RawBody: tc.body}))
			t.Cleanup(srv.Close)

			_, err := newTestClient(t, srv.URL+"/api/v1", Options{}).Generate(context.Background(), pdfUpload("a.pdf"))
			requireKind(t, err, KindMalformed)
			assert.Contains(t, err.Error(), "Invalid response format")
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.Options{Delay: 2 * time.Second}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL+"/api/v1", Options{UploadTimeout: 50 * time.Millisecond})
	_, err := c.Generate(context.Background(), pdfUpload("slow.pdf"))
	requireKind(t, err, KindTimeout)
}

func TestClient_NetworkUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := newTestClient(t, "http://"+addr+"/api/v1", Options{HealthTimeout: time.Second})
	requireKind(t, c.Health(context.Background()), KindNetwork)

	_, err = c.Generate(context.Background(), pdfUpload("a.pdf"))
	requireKind(t, err, KindNetwork)
}

func TestClient_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Errorf("response writer does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL, Options{}).Generate(context.Background(), pdfUpload("a.pdf"))
	requireKind(t, err, KindNoResponse)
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.Options{Delay: 2 * time.Second}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := newTestClient(t, srv.URL+"/api/v1", Options{}).Generate(ctx, pdfUpload("a.pdf"))
	requireKind(t, err, KindCanceled)
}

func TestClient_RefusesOversizedUpload(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	t.Cleanup(srv.Close)

	upload := pdfUpload("huge.pdf")
	upload.Size = document.MaxSize + 1
	_, err := newTestClient(t, srv.URL, Options{}).Generate(context.Background(), upload)
	requireKind(t, err, KindTooLarge)
	assert.Zero(t, hits)
}

func TestClient_NilBody(t *testing.T) {
	c := newTestClient(t, "127.0.0.1:1", Options{})
	_, err := c.Generate(context.Background(), Upload{Name: "a.pdf"})
	requireKind(t, err, KindUnknown)
}

func TestCappedReader(t *testing.T) {
	r := &cappedReader{r: strings.NewReader("abcdef"), remaining: 4}
	buf := make([]byte, 8)
	_, err := r.Read(buf)
	assert.ErrorIs(t, err, errTooLarge)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	wrapped := errors.Join(errors.New("ctx"), &Error{Kind: KindTimeout, Op: "generate"})
	assert.Equal(t, KindTimeout, KindOf(wrapped))
	assert.Equal(t, "timeout", KindTimeout.String())
}
