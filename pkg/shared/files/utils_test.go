package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "summary.json",
			expectFile:   filepath.Join(tmpDir, "summary.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "File path with extension",
			inputPath:    filepath.Join(tmpDir, "summary.json"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "summary.json"),
			expectFolder: tmpDir,
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "summary.json")
				_ = os.WriteFile(f, []byte("test"), 0644)
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "output_folder"),
			nameTemplate: "summary.sarif",
			expectFile:   filepath.Join(tmpDir, "output_folder", "summary.sarif"),
			expectFolder: filepath.Join(tmpDir, "output_folder"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nonexistent.sarif"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "nonexistent.sarif"),
			expectFolder: tmpDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if filePath != expectFile {
				t.Errorf("Expected file path %s, got %s", expectFile, filePath)
			}
			if folderPath != expectFolder {
				t.Errorf("Expected folder path %s, got %s", expectFolder, folderPath)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tmpDir := t.TempDir()

	if err := ValidatePath(tmpDir); err == nil {
		t.Errorf("expected an error for a directory path")
	}

	f := filepath.Join(tmpDir, "result.json")
	if err := os.WriteFile(f, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(f); err != nil {
		t.Errorf("unexpected error for a regular file: %v", err)
	}

	if err := ValidatePath(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
