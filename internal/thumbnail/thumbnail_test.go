package thumbnail

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ytget/fetchtube/internal/model"
)

func TestCandidateURLsProviderSeedsFirst(t *testing.T) {
	entry := &model.MediaEntry{
		ID: "abc123",
		Thumbnails: []model.Thumbnail{
			{URL: "https://cdn.example.com/huge.jpg", Width: 1920, Height: 1080},
		},
	}

	urls := CandidateURLs(entry)
	if len(urls) != 6 {
		t.Fatalf("Expected 6 candidates, got %d", len(urls))
	}

	if urls[0] != "https://i.ytimg.com/vi/abc123/maxresdefault.jpg" {
		t.Errorf("Expected maxresdefault first, got '%s'", urls[0])
	}

	if urls[5] != "https://cdn.example.com/huge.jpg" {
		t.Errorf("Expected descriptor URL last, got '%s'", urls[5])
	}
}

func TestCandidateURLsRankedByAreaThenExtension(t *testing.T) {
	entry := &model.MediaEntry{
		Thumbnails: []model.Thumbnail{
			{URL: "https://cdn.example.com/small.jpg", Width: 120, Height: 90},
			{URL: "https://cdn.example.com/big-noext", Width: 1280, Height: 720},
			{URL: "https://cdn.example.com/big.png", Width: 1280, Height: 720},
		},
	}

	urls := CandidateURLs(entry)
	expected := []string{
		"https://cdn.example.com/big.png",
		"https://cdn.example.com/big-noext",
		"https://cdn.example.com/small.jpg",
	}
	for i, want := range expected {
		if urls[i] != want {
			t.Errorf("Position %d: expected '%s', got '%s'", i, want, urls[i])
		}
	}
}

func TestCandidateURLsDeduplicates(t *testing.T) {
	entry := &model.MediaEntry{
		ID: "abc123",
		Thumbnails: []model.Thumbnail{
			{URL: "https://i.ytimg.com/vi/abc123/hqdefault.jpg", Width: 480, Height: 360},
		},
	}

	urls := CandidateURLs(entry)
	seen := make(map[string]int)
	for _, u := range urls {
		seen[u]++
	}
	if seen["https://i.ytimg.com/vi/abc123/hqdefault.jpg"] != 1 {
		t.Error("Expected duplicate URL to appear exactly once")
	}
	if len(urls) != 5 {
		t.Errorf("Expected 5 candidates after dedup, got %d", len(urls))
	}
}

func TestFetchRejectsSmallBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tiny"))
	}))
	defer server.Close()

	f := NewFetcher()
	if got := f.Fetch(context.Background(), server.URL); got != nil {
		t.Errorf("Expected nil for sub-1024-byte body, got %d bytes", len(got))
	}
}

func TestFetchAcceptsLargeBody(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 2048)
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer server.Close()

	f := NewFetcher()
	got := f.Fetch(context.Background(), server.URL)
	if len(got) != len(payload) {
		t.Fatalf("Expected %d bytes, got %d", len(payload), len(got))
	}
	if gotUA == "" {
		t.Error("Expected non-empty user-agent header")
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write(payload)
	}))
	defer server.Close()

	f := NewFetcher()
	if got := f.Fetch(context.Background(), server.URL); got != nil {
		t.Error("Expected nil for 404 response regardless of body size")
	}
}

func TestFetchNetworkErrorReturnsNil(t *testing.T) {
	f := NewFetcher()
	if got := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable"); got != nil {
		t.Error("Expected nil on connection error")
	}
}

func TestSniff(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 32)...)
	if got := Sniff(jpeg); got != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got '%s'", got)
	}

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0}, 32)...)
	if got := Sniff(png); got != "image/png" {
		t.Errorf("Expected image/png, got '%s'", got)
	}

	webp := append([]byte("RIFF\x24\x00\x00\x00WEBP"), bytes.Repeat([]byte{0}, 32)...)
	if got := Sniff(webp); got != "image/webp" {
		t.Errorf("Expected image/webp, got '%s'", got)
	}

	if got := Sniff([]byte(strings.Repeat("x", 64))); got != "image/jpeg" {
		t.Errorf("Expected jpeg default for unknown bytes, got '%s'", got)
	}
}
