package engine

import (
	"encoding/json"
	"strings"

	"github.com/ytget/fetchtube/internal/model"
)

// infoNode mirrors the engine's per-item info JSON. Collections nest their
// items under entries, possibly recursively.
type infoNode struct {
	Type          string      `json:"_type"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Uploader      string      `json:"uploader"`
	Channel       string      `json:"channel"`
	Playlist      string      `json:"playlist"`
	PlaylistTitle string      `json:"playlist_title"`
	WebpageURL    string      `json:"webpage_url"`
	FilenameOld   string      `json:"_filename"`
	Filename      string      `json:"filename"`
	Filepath      string      `json:"filepath"`
	Ext           string      `json:"ext"`
	Thumbnails    []thumbNode `json:"thumbnails"`
	Downloads     []struct {
		Filepath string `json:"filepath"`
	} `json:"requested_downloads"`
	Entries []*infoNode `json:"entries"`
}

type thumbNode struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// parseInfoLines parses engine-printed info JSON lines into entries. Lines
// that are not valid JSON objects are skipped; collection nodes are
// flattened into their leaves.
func parseInfoLines(output string) []*model.MediaEntry {
	var entries []*model.MediaEntry
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}

		var node infoNode
		if err := json.Unmarshal([]byte(line), &node); err != nil {
			continue
		}
		entries = append(entries, flattenNode(&node)...)
	}
	return entries
}

// flattenNode returns the depth-first, left-to-right leaves of a result
// tree. A node with no usable children stands for itself, so the result is
// never empty: flattening an already-flat item yields exactly that item.
func flattenNode(node *infoNode) []*model.MediaEntry {
	if len(node.Entries) == 0 {
		return []*model.MediaEntry{entryFromNode(node)}
	}

	var leaves []*model.MediaEntry
	for _, child := range node.Entries {
		if child == nil {
			continue
		}
		leaves = append(leaves, flattenNode(child)...)
	}
	if len(leaves) == 0 {
		return []*model.MediaEntry{entryFromNode(node)}
	}
	return leaves
}

// entryFromNode maps one info node onto the run's entry model
func entryFromNode(node *infoNode) *model.MediaEntry {
	entry := &model.MediaEntry{
		ID:            node.ID,
		Title:         node.Title,
		Uploader:      node.Uploader,
		Channel:       node.Channel,
		Playlist:      node.Playlist,
		PlaylistTitle: node.PlaylistTitle,
		WebpageURL:    node.WebpageURL,
		Ext:           node.Ext,
	}

	entry.Filename = node.FilenameOld
	if entry.Filename == "" {
		entry.Filename = node.Filename
	}

	entry.Filepath = node.Filepath
	if entry.Filepath == "" && len(node.Downloads) > 0 {
		entry.Filepath = node.Downloads[0].Filepath
	}

	for _, t := range node.Thumbnails {
		if t.URL == "" {
			continue
		}
		entry.Thumbnails = append(entry.Thumbnails, model.Thumbnail{
			URL:    t.URL,
			Width:  t.Width,
			Height: t.Height,
		})
	}

	return entry
}
