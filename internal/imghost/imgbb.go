// Package imghost uploads product images to the external imgbb hosting API.
package imghost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// Images wider than this are downscaled before upload.
const maxWidth = 800

type Uploader struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

type Option func(*Uploader)

func WithHTTPClient(hc *http.Client) Option {
	return func(u *Uploader) { u.client = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(u *Uploader) { u.logger = l }
}

func NewUploader(endpoint, apiKey string, opts ...Option) (*Uploader, error) {
	if apiKey == "" {
		return nil, errors.New("imghost: api key not set")
	}
	u := &Uploader{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// File is one image ready for upload.
type File struct {
	Name string
	Data []byte
}

// Prepare decodes an uploaded image, downscales it to the max width when
// needed (preserving aspect ratio) and re-encodes it as JPEG.
func Prepare(r io.Reader, filename string) (File, error) {
	var img image.Image
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	default:
		return File{}, fmt.Errorf("imghost: unsupported image format %q, only PNG, JPG, JPEG are allowed", filepath.Ext(filename))
	}
	if err != nil {
		return File{}, fmt.Errorf("imghost: decode %s: %w", filename, err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return File{}, fmt.Errorf("imghost: encode %s: %w", filename, err)
	}
	return File{Name: filename, Data: buf.Bytes()}, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends one image as the multipart "image" field and returns its
// hosted URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", f.Name)
	if err != nil {
		return "", fmt.Errorf("imghost: build form: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", fmt.Errorf("imghost: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("imghost: build form: %w", err)
	}

	endpoint := u.endpoint + "?key=" + url.QueryEscape(u.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("imghost: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imghost: upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imghost: upload %s: unexpected status %s", f.Name, resp.Status)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("imghost: upload %s: malformed response: %w", f.Name, err)
	}
	if !out.Success || out.Data.URL == "" {
		return "", fmt.Errorf("imghost: upload %s: image host rejected the upload", f.Name)
	}

	u.logger.Debug("Image uploaded", "name", f.Name, "url", out.Data.URL, "duration", time.Since(start))
	return out.Data.URL, nil
}

// UploadAll fans the uploads out in parallel and waits for all of them.
// The first failure cancels the rest and fails the whole operation; images
// that already made it to the host are not compensated for.
func (u *Uploader) UploadAll(ctx context.Context, files ...File) ([]string, error) {
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			hosted, err := u.Upload(gctx, f)
			if err != nil {
				return err
			}
			urls[i] = hosted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
