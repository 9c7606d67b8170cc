package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/brogergvhs/novelsrc/internal/util"
)

var coverExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DownloadCover saves the image at u into dir and returns the local path.
func DownloadCover(ctx context.Context, client *http.Client, u, referer, dir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := util.CheckStatus(resp); err != nil {
		return "", err
	}

	ext := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mt, _, _ := mime.ParseMediaType(ct)
		if !strings.HasPrefix(mt, "image/") {
			return "", fmt.Errorf("unexpected MIME: %s", ct)
		}
		ext = coverExts[mt]
	}
	if ext == "" {
		ext = strings.ToLower(path.Ext(req.URL.Path))
	}
	if ext == "" {
		ext = ".jpg"
	}

	f, err := os.CreateTemp(dir, "cover-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
