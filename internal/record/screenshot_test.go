package record

import (
	"testing"

	"github.com/spf13/afero"
)

func TestFindScreenshot(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"none", nil, ""},
		{"png only", []string{"screenshot.png"}, "screenshot.png"},
		{"jpg only", []string{"screenshot.jpg"}, "screenshot.jpg"},
		{"jpeg only", []string{"screenshot.jpeg"}, "screenshot.jpeg"},
		{"png wins over jpg", []string{"screenshot.jpg", "screenshot.png"}, "screenshot.png"},
		{"jpg wins over jpeg", []string{"screenshot.jpeg", "screenshot.jpg"}, "screenshot.jpg"},
		{"other names ignored", []string{"Screenshot.png", "screenshot.gif", "shot.png"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, f := range tt.files {
				if err := afero.WriteFile(fs, "/site/apps/a/"+f, []byte("img"), 0644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := FindScreenshot(fs, "/site/apps/a")
			if err != nil {
				t.Fatalf("FindScreenshot() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FindScreenshot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindScreenshot_DirectoryIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/site/apps/a/screenshot.png", 0755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/site/apps/a/screenshot.jpg", []byte("img"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FindScreenshot(fs, "/site/apps/a")
	if err != nil {
		t.Fatalf("FindScreenshot() error: %v", err)
	}
	if got != "screenshot.jpg" {
		t.Errorf("FindScreenshot() = %q, want screenshot.jpg", got)
	}
}
