package fontload

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a font binary together with an SFNT view, if x/image/sfnt is
// able to interpret the font.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font // nil for fonts rejected by x/image/sfnt, e.g. missing 'cmap'
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	if f.Fontname == "" {
		f.Fontname = strings.TrimSuffix(filepath.Base(fontfile), filepath.Ext(fontfile))
	}
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// WrapBinary wraps font data without requiring x/image/sfnt to accept it.
// Fonts lacking tables unrelated to outlines, such as 'cmap' or 'name', will
// have a nil SFNT view.
func WrapBinary(fbytes []byte) *ScalableFont {
	if f, err := ParseOpenTypeFont(fbytes); err == nil {
		return f
	}
	return &ScalableFont{Binary: fbytes}
}
