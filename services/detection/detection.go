package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/pkg/errors"
)

// Gateway is the contract with the external image-classification service.
// An empty detection list is a valid zero-match answer, not an error.
// Transport failures, timeouts and non-2xx responses surface as
// ErrServiceUnavailable; no retries happen at this layer.
type Gateway interface {
	Detect(ctx context.Context, image []byte, lat, lon float64) (*models.DetectionResponse, error)
}

type httpGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway returns a Gateway talking to a YOLO-style detection
// endpoint at baseURL/detect. Every call is bounded by timeout.
func NewHTTPGateway(baseURL string, timeout time.Duration) Gateway {
	return &httpGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *httpGateway) Detect(ctx context.Context, image []byte, lat, lon float64) (*models.DetectionResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}
	if _, err := part.Write(image); err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}
	if err := writer.WriteField("lat", strconv.FormatFloat(lat, 'f', -1, 64)); err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}
	if err := writer.WriteField("lon", strconv.FormatFloat(lon, 'f', -1, 64)); err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/detect", &body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build detection request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: detection service returned %d", errs.ErrServiceUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrServiceUnavailable, err)
	}

	var result models.DetectionResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed detection response", errs.ErrServiceUnavailable)
	}
	return &result, nil
}
