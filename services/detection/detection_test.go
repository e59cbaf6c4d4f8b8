package detection

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDetectParsesDetections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/detect", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		require.Equal(t, "18.52", r.FormValue("lat"))
		require.Equal(t, "73.85", r.FormValue("lon"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("jpeg-bytes"), body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detections":[{"label":"garbage","confidence":0.91},{"label":"plastic","confidence":0.42}]}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, 5*time.Second)
	resp, err := gw.Detect(context.Background(), []byte("jpeg-bytes"), 18.52, 73.85)
	require.NoError(t, err)
	require.Len(t, resp.Detections, 2)
	require.Equal(t, "garbage", resp.Detections[0].Label)
	require.Equal(t, 0.91, resp.Detections[0].Confidence)
}

func TestDetectEmptyDetectionsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detections":[]}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, 5*time.Second)
	resp, err := gw.Detect(context.Background(), []byte("jpeg-bytes"), 18.52, 73.85)
	require.NoError(t, err)
	require.Empty(t, resp.Detections)
}

func TestDetectNon2xxIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, 5*time.Second)
	_, err := gw.Detect(context.Background(), []byte("jpeg-bytes"), 18.52, 73.85)
	require.True(t, errors.Is(err, errs.ErrServiceUnavailable))
}

func TestDetectTransportFailureIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := NewHTTPGateway(srv.URL, time.Second)
	_, err := gw.Detect(context.Background(), []byte("jpeg-bytes"), 18.52, 73.85)
	require.True(t, errors.Is(err, errs.ErrServiceUnavailable))
}

func TestDetectMalformedResponseIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, 5*time.Second)
	_, err := gw.Detect(context.Background(), []byte("jpeg-bytes"), 18.52, 73.85)
	require.True(t, errors.Is(err, errs.ErrServiceUnavailable))
}
