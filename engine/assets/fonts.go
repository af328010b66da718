// Package assets resolves files shipped next to the binary: GLSL
// sources under assets/shaders and font files under assets/fonts.
// Paths are relative to the process working directory.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loomkit/loom/engine/text"
)

// Font files are named <family>-<weight>.ttf or .otf, e.g.
// inter-regular.ttf, inter-bold.otf. The regular weight is required;
// bold and light are picked up when present.

// FindFontFamily resolves the weight files for a family name.
func FindFontFamily(name string) (text.FamilySources, error) {
	var src text.FamilySources
	src.Regular = findWeight(name, "regular")
	if src.Regular == "" {
		return text.FamilySources{}, fmt.Errorf("assets: font family %q: no regular weight under assets/fonts", name)
	}
	src.Bold = findWeight(name, "bold")
	src.Light = findWeight(name, "light")
	return src, nil
}

func findWeight(name, weight string) string {
	for _, ext := range []string{".ttf", ".otf"} {
		p := filepath.Join("assets", "fonts", name+"-"+weight+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// ListFontFamilies returns the family names that have a regular weight
// on disk, sorted. A missing fonts directory yields an empty list.
func ListFontFamilies() []string {
	ents, err := os.ReadDir(filepath.Join("assets", "fonts"))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		fam, ok := strings.CutSuffix(strings.TrimSuffix(e.Name(), ext), "-regular")
		if !ok || fam == "" {
			continue
		}
		names = append(names, fam)
	}
	sort.Strings(names)
	return names
}
