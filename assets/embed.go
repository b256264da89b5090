package assets

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

//go:embed *.png *.wav
var assetsFS embed.FS

// DefaultImage is the picture used when no image is configured.
const DefaultImage = "landscape.png"

var ErrNotFound = errors.New("assets: not found")

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// DecodeImage decodes png, jpeg, gif, bmp or webp data.
func DecodeImage(b []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Loader resolves image sources for a puzzle. A source is tried as an
// http(s) URL, then as an embedded asset, then on disk relative to each of
// Dirs (the working directory when empty).
type Loader struct {
	Dirs   []string
	Client *http.Client
}

func NewLoader(dirs ...string) *Loader {
	return &Loader{Dirs: dirs, Client: http.DefaultClient}
}

func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src == "" {
		src = DefaultImage
	}

	b, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(b)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", src, err)
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.fetch(ctx, src)
	}
	if b, err := LoadFile(src); err == nil {
		return b, nil
	}

	dirs := l.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	tried := make([]string, 0, 2*len(dirs))
	for _, dir := range dirs {
		tried = append(tried, filepath.Join(dir, src), filepath.Join(dir, "assets", src))
	}
	if filepath.IsAbs(src) {
		tried = []string{src}
	}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
