package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "present.mp3")

	if FileExists(path) {
		t.Errorf("Expected missing file to report false: %s", path)
	}

	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if !FileExists(path) {
		t.Errorf("Expected existing file to report true: %s", path)
	}

	if FileExists(tempDir) {
		t.Error("Expected directory to report false")
	}
}

func TestIsTemporaryArtifact(t *testing.T) {
	if !IsTemporaryArtifact("video.mp4.part") {
		t.Error("Expected .part file to be temporary")
	}
	if !IsTemporaryArtifact("video.ytdl") {
		t.Error("Expected .ytdl file to be temporary")
	}
	if IsTemporaryArtifact("video.mp4") {
		t.Error("Expected .mp4 file to not be temporary")
	}
}

func TestReplaceExt(t *testing.T) {
	if got := ReplaceExt("/tmp/song.webm", ".mp3"); got != "/tmp/song.mp3" {
		t.Errorf("Expected '/tmp/song.mp3', got '%s'", got)
	}

	if got := ReplaceExt("/tmp/noext", ".mp3"); got != "/tmp/noext.mp3" {
		t.Errorf("Expected '/tmp/noext.mp3', got '%s'", got)
	}
}
