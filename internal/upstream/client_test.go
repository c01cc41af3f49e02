package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSuccessWithoutFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer_markdown":"hi"}`))
	}))
	defer server.Close()

	result, err := NewClient().Submit(context.Background(), server.URL, Submission{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result.AnswerMarkdown)
	assert.Empty(t, result.Files)
}

func TestSubmitSendsMultipartFields(t *testing.T) {
	image := []byte("\x89PNG\r\n\x1a\nfakepng")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "describe this", r.FormValue("text"))
		assert.Equal(t, "opaque-token", r.FormValue("token"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "shot.png", header.Filename)
		buf := make([]byte, len(image))
		_, err = file.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, image, buf)

		w.Write([]byte(`{"answer_markdown":"ok","files":[{"name":"a.txt","url":"https://x/a"},{"name":"b.txt","url":"https://x/b"}]}`))
	}))
	defer server.Close()

	result, err := NewClient().Submit(context.Background(), server.URL, Submission{
		Text:      "describe this",
		Image:     image,
		ImageName: "shot.png",
		Token:     "opaque-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result.AnswerMarkdown)
	require.Len(t, result.Files, 2)
	assert.Equal(t, Attachment{Name: "a.txt", URL: "https://x/a"}, result.Files[0])
	assert.Equal(t, Attachment{Name: "b.txt", URL: "https://x/b"}, result.Files[1])
}

func TestSubmitUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	result, err := NewClient().Submit(context.Background(), server.URL, Submission{Text: "x"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTeapot, httpErr.Status)
	assert.Contains(t, err.Error(), "418")
	assert.Contains(t, err.Error(), "short and stout")
	assert.Empty(t, result.AnswerMarkdown)
}

func TestSubmitInvalidEndpoint(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	for _, bad := range []string{"", "ftp://example.com", "example.com"} {
		_, err := NewClient().Submit(context.Background(), bad, Submission{Text: "x"})
		assert.ErrorIs(t, err, ErrInvalidEndpoint, "endpoint %q", bad)
	}
	assert.Zero(t, atomic.LoadInt32(&calls), "invalid endpoints must not reach the network")
}

func TestSubmitTimeoutIsDistinct(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClientWithTimeout(50 * time.Millisecond)
	_, err := client.Submit(context.Background(), server.URL, Submission{Text: "slow"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr), "timeout must not look like an upstream HTTP error")
}

func TestSubmitMalformedResponseDegrades(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Result
	}{
		{"not json", "<html>oops</html>", Result{Files: []Attachment{}}},
		{"files wrong shape", `{"answer_markdown":"x","files":"nope"}`, Result{AnswerMarkdown: "x", Files: []Attachment{}}},
		{"files null", `{"answer_markdown":"y","files":null}`, Result{AnswerMarkdown: "y", Files: []Attachment{}}},
		{"empty object", `{}`, Result{Files: []Attachment{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			result, err := NewClient().Submit(context.Background(), server.URL, Submission{Text: "x"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestProbeSendsDiagnosticMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, DiagnosticText, r.FormValue("text"))
		assert.Equal(t, "true", r.FormValue("diagnostic"))
	}))
	defer server.Close()

	require.NoError(t, NewClient().Probe(context.Background(), server.URL))
}

func TestProbeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	err := NewClient().Probe(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestProbeInvalidEndpoint(t *testing.T) {
	err := NewClient().Probe(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
