package engine

import (
	"context"
	"fmt"
	"strings"

	ytplaylist "github.com/ytget/ytdlp/v2"

	"github.com/ytget/fetchtube/internal/model"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// extractPlaylistID extracts the playlist ID from various URL formats,
// returning "" when the URL carries none
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}

	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}

	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// probePlaylistItems enumerates playlist items through the lightweight
// library path, avoiding an engine subprocess for the common case
func probePlaylistItems(ctx context.Context, playlistID string) ([]*model.MediaEntry, error) {
	d := ytplaylist.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("playlist %s has no items", playlistID)
	}

	entries := make([]*model.MediaEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, &model.MediaEntry{
			ID:         it.VideoID,
			Title:      it.Title,
			WebpageURL: fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
