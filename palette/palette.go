// Package palette holds colorblind-safe palettes and maps cluster colors
// onto them.
//
// Distances between colors are CIEDE2000 differences, so a cluster color is
// replaced by the palette entry that looks closest to it.
package palette

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrEmptyPalette   = errors.New("palette: no colors")
	ErrUnknownPalette = errors.New("palette: unknown palette")
)

// Palette is a named, ordered list of colors.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

var builtin = []struct {
	name    string
	aliases []string
	hex     []string
}{
	{
		// Okabe & Ito, "Color Universal Design"
		name:    "okabe-ito",
		aliases: []string{"okabeito", "cud"},
		hex:     []string{"#000000", "#e69f00", "#56b4e9", "#009e73", "#f0e442", "#0072b2", "#d55e00", "#cc79a7"},
	},
	{
		name:    "ibm",
		aliases: []string{"ibm-design"},
		hex:     []string{"#648fff", "#785ef0", "#dc267f", "#fe6100", "#ffb000"},
	},
	{
		// Paul Tol, bright qualitative scheme
		name:    "tol",
		aliases: []string{"tol-bright"},
		hex:     []string{"#4477aa", "#ee6677", "#228833", "#ccbb44", "#66ccee", "#aa3377", "#bbbbbb"},
	},
}

func OkabeIto() Palette { return mustBuiltin("okabe-ito") }
func IBM() Palette { return mustBuiltin("ibm") }
func TolBright() Palette { return mustBuiltin("tol") }

// Names lists the built-in palette names accepted by ByName.
func Names() []string {
	names := make([]string, len(builtin))
	for i, b := range builtin {
		names[i] = b.name
	}
	return names
}

// ByName returns a fresh copy of a built-in palette. Names are case
// insensitive and accept a few aliases.
func ByName(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range builtin {
		if b.name == name || slices.Contains(b.aliases, name) {
			p, err := parseHex(b.name, b.hex)
			if err != nil {
				return Palette{}, err
			}
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

func mustBuiltin(name string) Palette {
	p, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse reads a palette from a comma separated list of hex colors such as
// "#ff0000,#00ff00,0000ff". The leading '#' is optional.
func Parse(s string) (Palette, error) {
	var hex []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			hex = append(hex, f)
		}
	}
	return parseHex("custom", hex)
}

// Lookup resolves s as a built-in palette name first, then as a hex list.
func Lookup(s string) (Palette, error) {
	if p, err := ByName(s); err == nil {
		return p, nil
	}
	p, err := Parse(s)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %q is neither a palette name nor a hex list", ErrUnknownPalette, s)
	}
	return p, nil
}

func parseHex(name string, hex []string) (Palette, error) {
	if len(hex) == 0 {
		return Palette{}, ErrEmptyPalette
	}
	p := Palette{Name: name, Colors: make([]colorful.Color, len(hex))}
	for i, h := range hex {
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette: color %d: %w", i, err)
		}
		p.Colors[i] = c
	}
	return p, nil
}

func (p Palette) Len() int { return len(p.Colors) }

// Hex returns the colors as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex()
	}
	return out
}

// Nearest returns the index of the palette color closest to c.
func (p Palette) Nearest(c color.Color) int {
	cc := toColorful(c)
	best, bestDist := 0, cc.DistanceCIEDE2000(p.Colors[0])
	for i := 1; i < len(p.Colors); i++ {
		if d := cc.DistanceCIEDE2000(p.Colors[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Distinct maps every color to a palette index, giving distinct colors
// distinct palette entries while entries remain. Pairs are taken greedily in
// order of increasing distance. Once the palette is used up, remaining colors
// fall back to their nearest entry.
func (p Palette) Distinct(colors []color.Color) []int {
	type pair struct {
		color, entry int
		dist         float64
	}
	pairs := make([]pair, 0, len(colors)*len(p.Colors))
	cs := make([]colorful.Color, len(colors))
	for i, c := range colors {
		cs[i] = toColorful(c)
		for j, e := range p.Colors {
			pairs = append(pairs, pair{color: i, entry: j, dist: cs[i].DistanceCIEDE2000(e)})
		}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]int, len(colors))
	for i := range out {
		out[i] = -1
	}
	used := make([]bool, len(p.Colors))
	left := min(len(colors), len(p.Colors))
	for _, pr := range pairs {
		if left == 0 {
			break
		}
		if out[pr.color] >= 0 || used[pr.entry] {
			continue
		}
		out[pr.color] = pr.entry
		used[pr.entry] = true
		left--
	}
	for i, idx := range out {
		if idx < 0 {
			out[i] = p.Nearest(cs[i])
		}
	}
	return out
}

// Map replaces every color by its palette entry, by Nearest or by Distinct.
func (p Palette) Map(colors []color.Color, distinct bool) []color.Color {
	var idx []int
	if distinct {
		idx = p.Distinct(colors)
	} else {
		idx = make([]int, len(colors))
		for i, c := range colors {
			idx[i] = p.Nearest(c)
		}
	}
	out := make([]color.Color, len(colors))
	for i, j := range idx {
		out[i] = p.Colors[j]
	}
	return out
}

func toColorful(c color.Color) colorful.Color {
	if cc, ok := c.(colorful.Color); ok {
		return cc
	}
	cc, _ := colorful.MakeColor(c)
	return cc
}
