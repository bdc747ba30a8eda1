package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ScreenshotExtensions lists screenshot file extensions in priority order.
var ScreenshotExtensions = []string{"png", "jpg", "jpeg"}

// FindScreenshot returns the name of the first screenshot.<ext> present in
// appDir, or "" when there is none. Only presence is checked.
func FindScreenshot(fs afero.Fs, appDir string) (string, error) {
	for _, ext := range ScreenshotExtensions {
		name := "screenshot." + ext
		info, err := fs.Stat(filepath.Join(appDir, name))
		if err == nil && !info.IsDir() {
			return name, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("probing %s: %w", filepath.Join(appDir, name), err)
		}
	}
	return "", nil
}
