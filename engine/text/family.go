package text

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
)

// Weight selects a style within a font family.
type Weight int

const (
	WeightLight Weight = iota
	WeightRegular
	WeightBold
)

func (w Weight) String() string {
	switch w {
	case WeightLight:
		return "light"
	case WeightRegular:
		return "regular"
	case WeightBold:
		return "bold"
	default:
		return fmt.Sprintf("weight(%d)", int(w))
	}
}

// ErrUnknownFamily is returned when a face is requested for a family
// that was never registered.
var ErrUnknownFamily = errors.New("text: unknown font family")

// ErrNoRegular rejects family registrations without a regular weight,
// which every other weight falls back to.
var ErrNoRegular = errors.New("text: font family has no regular weight")

// FamilySources names the font files of one family. Regular is
// mandatory; the others are optional and fall back to Regular.
type FamilySources struct {
	Regular string
	Bold    string
	Light   string
}

type family struct {
	name  string
	fonts map[Weight]*opentype.Font
}

// parseFamily loads and parses every present weight.
func parseFamily(name string, src FamilySources) (*family, error) {
	if src.Regular == "" {
		return nil, ErrNoRegular
	}
	fam := &family{name: name, fonts: make(map[Weight]*opentype.Font, 3)}
	for weight, path := range map[Weight]string{
		WeightRegular: src.Regular,
		WeightBold:    src.Bold,
		WeightLight:   src.Light,
	} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("text: read font %q (%s %s): %w", path, name, weight, err)
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("text: parse font %q (%s %s): %w", path, name, weight, err)
		}
		fam.fonts[weight] = ft
	}
	return fam, nil
}

func parseFamilyBytes(name string, data map[Weight][]byte) (*family, error) {
	if data[WeightRegular] == nil {
		return nil, ErrNoRegular
	}
	fam := &family{name: name, fonts: make(map[Weight]*opentype.Font, len(data))}
	for weight, blob := range data {
		ft, err := opentype.Parse(blob)
		if err != nil {
			return nil, fmt.Errorf("text: parse embedded font (%s %s): %w", name, weight, err)
		}
		fam.fonts[weight] = ft
	}
	return fam, nil
}

// font returns the parsed font for a weight, falling back to regular
// when the weight was not provided.
func (f *family) font(w Weight) *opentype.Font {
	if ft, ok := f.fonts[w]; ok {
		return ft
	}
	return f.fonts[WeightRegular]
}
