package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadShader reads a GLSL source file from assets/shaders. The device
// takes care of null termination, so the source comes back verbatim.
func LoadShader(name string) (string, error) {
	path := filepath.Join("assets", "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("assets: shader %q: %w", name, err)
	}
	return string(b), nil
}
