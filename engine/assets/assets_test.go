package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, rel string, data string) {
	t.Helper()
	path := filepath.Join(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// chdir mirrors testing.T.Chdir, which needs a Go 1.24+ toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadShaderReadsSourceVerbatim(t *testing.T) {
	chdir(t, t.TempDir())
	writeAsset(t, "assets/shaders/demo.vert", "#version 330 core\nvoid main() {}\n")

	src, err := LoadShader("demo.vert")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\nvoid main() {}\n", src)

	_, err = LoadShader("missing.frag")
	assert.Error(t, err)
}

func TestFindFontFamilyRequiresRegular(t *testing.T) {
	chdir(t, t.TempDir())
	writeAsset(t, "assets/fonts/inter-regular.ttf", "stub")
	writeAsset(t, "assets/fonts/inter-bold.otf", "stub")
	writeAsset(t, "assets/fonts/mono-bold.ttf", "stub")

	src, err := FindFontFamily("inter")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("assets", "fonts", "inter-regular.ttf"), src.Regular)
	assert.Equal(t, filepath.Join("assets", "fonts", "inter-bold.otf"), src.Bold)
	assert.Empty(t, src.Light)

	// A family with only a bold file has no regular to anchor it.
	_, err = FindFontFamily("mono")
	assert.Error(t, err)
}

func TestListFontFamilies(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Empty(t, ListFontFamilies())

	writeAsset(t, "assets/fonts/serif-regular.otf", "stub")
	writeAsset(t, "assets/fonts/inter-regular.ttf", "stub")
	writeAsset(t, "assets/fonts/inter-bold.ttf", "stub")
	writeAsset(t, "assets/fonts/readme.txt", "not a font")

	assert.Equal(t, []string{"inter", "serif"}, ListFontFamilies())
}
