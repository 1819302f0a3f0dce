package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel-admin/internal/logger"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// MaxImageBytes is the upload ceiling (2.5 MB).
const MaxImageBytes = 2_621_440

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Sniff detects the content type from the bytes themselves.
func Sniff(data []byte) string {
	return mimetype.Detect(data).String()
}

func allowed(data []byte) bool {
	m := mimetype.Detect(data)
	for _, t := range allowedImageTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// CheckImage verifies a captured data URI: decodable, an allowed image type, within size.
// Both the declared and the sniffed type must be allowed.
func CheckImage(uri string) (DataURI, error) {
	d, err := ParseDataURI(uri)
	if err != nil {
		return DataURI{}, err
	}
	declared := false
	for _, t := range allowedImageTypes {
		if d.MIME == t {
			declared = true
			break
		}
	}
	if !declared || !allowed(d.Data) {
		return DataURI{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, d.MIME)
	}
	if len(d.Data) > MaxImageBytes {
		return DataURI{}, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(d.Data))
	}
	return d, nil
}

// Fetcher downloads stored images and re-encodes them as data URIs.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: timeout}}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "media"), zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := f.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch image", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Warn("image fetch returned non-200", zap.Int("status", res.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if !allowed(data) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, Sniff(data))
	}

	return EncodeDataURI(Sniff(data), data), nil
}
