package classifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPotholes(t *testing.T) {
	var gotPath string
	var gotFile []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFile, _ = io.ReadAll(file)
		json.NewEncoder(w).Encode(Detection{Detected: true, Confidence: 0.91, Label: "pothole"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	det, err := c.DetectPotholes(context.Background(), []byte("jpeg-bytes"), "road.jpg")
	require.NoError(t, err)

	assert.Equal(t, "/api/detect/potholes", gotPath)
	assert.Equal(t, []byte("jpeg-bytes"), gotFile)
	assert.True(t, det.Detected)
	assert.Equal(t, 0.91, det.Confidence)
	assert.Equal(t, "pothole", det.Label)
}

func TestDetectGeneralDamagePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Detection{Detected: false})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	det, err := c.DetectGeneralDamage(context.Background(), []byte("x"), "road.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/api/detect/general-damage", gotPath)
	assert.False(t, det.Detected)
}

func TestDetectNon200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.DetectPotholes(context.Background(), []byte("x"), "road.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestDetectContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient(srv.URL)
	_, err := c.DetectPotholes(ctx, []byte("x"), "road.jpg")
	assert.Error(t, err)
}
