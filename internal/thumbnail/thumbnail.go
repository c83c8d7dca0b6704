package thumbnail

// Package thumbnail ranks and retrieves cover images for resolved media
// entries. Provider-convention URLs derived from the entry ID are tried
// first, highest conventional resolution first, with engine-extracted
// thumbnail descriptors as ranked fallbacks.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/fetchtube/internal/model"
)

// Fetch constants
const (
	DefaultTimeout = 12 * time.Second
	UserAgent      = "Mozilla/5.0 (compatible; fetchtube/1.0)"

	// MinValidSize rejects provider placeholder/error images
	MinValidSize = 1024
)

// URL templates
const (
	ProviderThumbnailURLTemplate = "https://i.ytimg.com/vi/%s/%s.jpg"
)

// Provider-convention thumbnail names, highest resolution first
var providerNames = []string{
	"maxresdefault",
	"sddefault",
	"hqdefault",
	"mqdefault",
	"default",
}

// Raster image extensions granting a ranking bonus
var rasterExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp"}

// CandidateURLs returns the ordered cover image URLs to try for an entry:
// provider-convention URLs first, then the entry's own thumbnail descriptors
// ranked by (area desc, raster-extension bonus desc), deduplicated while
// preserving first-seen order.
func CandidateURLs(e *model.MediaEntry) []string {
	var urls []string

	if e.ID != "" {
		for _, name := range providerNames {
			urls = append(urls, fmt.Sprintf(ProviderThumbnailURLTemplate, e.ID, name))
		}
	}

	ranked := make([]model.Thumbnail, len(e.Thumbnails))
	copy(ranked, e.Thumbnails)
	sort.SliceStable(ranked, func(i, j int) bool {
		areaI := ranked[i].Width * ranked[i].Height
		areaJ := ranked[j].Width * ranked[j].Height
		if areaI != areaJ {
			return areaI > areaJ
		}
		return extensionBonus(ranked[i].URL) > extensionBonus(ranked[j].URL)
	})

	for _, t := range ranked {
		if t.URL != "" {
			urls = append(urls, t.URL)
		}
	}

	return dedupe(urls)
}

// extensionBonus is 1 when the URL contains a common raster image extension
func extensionBonus(url string) int {
	lower := strings.ToLower(url)
	for _, ext := range rasterExtensions {
		if strings.Contains(lower, ext) {
			return 1
		}
	}
	return 0
}

// dedupe removes duplicate URLs preserving first occurrence
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	result := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		result = append(result, u)
	}
	return result
}

// Fetcher retrieves cover image bytes over HTTP
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the default bounded timeout
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch performs a GET for one candidate URL. It returns nil on any network
// error, non-2xx status, or a body under MinValidSize bytes; the caller
// iterates candidates and uses the first non-nil result.
func (f *Fetcher) Fetch(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) < MinValidSize {
		return nil
	}

	return body
}

// FetchBest walks the candidate URLs for an entry and returns the first
// acceptable image along with its sniffed mime type, or nil if none fetch
func (f *Fetcher) FetchBest(ctx context.Context, e *model.MediaEntry) ([]byte, string) {
	for _, url := range CandidateURLs(e) {
		if img := f.Fetch(ctx, url); img != nil {
			return img, Sniff(img)
		}
	}
	return nil, ""
}

// Sniff detects the image mime type by magic bytes, defaulting to JPEG when
// the content matches none of the supported raster formats
func Sniff(b []byte) string {
	detected := mimetype.Detect(b)
	for _, known := range []string{"image/jpeg", "image/png", "image/webp"} {
		if detected.Is(known) {
			return known
		}
	}
	return "image/jpeg"
}
