package main

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/yyyoichi/colorcluster"
	"github.com/yyyoichi/colorcluster/internal/labelmap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeImage(path string, img image.Image, k int) error {
	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}
	case ".gif":
		encode = func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, &gif.Options{NumColors: min(max(k, 1), 256)})
		}
	case ".tif", ".tiff":
		encode = func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	return writeFile(path, func(w io.Writer) error { return encode(w, img) })
}

func writeLabels(path string, q *colorcluster.Quantized) error {
	m := &labelmap.Map{
		K:      len(q.Colors),
		Width:  q.Width,
		Height: q.Height,
		Labels: q.Labels,
	}
	return writeFile(path, func(w io.Writer) error { return labelmap.Encode(w, m) })
}

type clusterJSON struct {
	Label    int       `json:"label"`
	Color    string    `json:"color,omitempty"`
	Painted  string    `json:"painted,omitempty"`
	Centroid []float64 `json:"centroid"`
	Size     int       `json:"size"`
}

type reportJSON struct {
	K             int           `json:"k"`
	Space         string        `json:"space,omitempty"`
	Palette       string        `json:"palette,omitempty"`
	PaletteColors []string      `json:"paletteColors,omitempty"`
	Iterations    int           `json:"iterations"`
	Converged     bool          `json:"converged"`
	Inertia       float64       `json:"inertia"`
	Clusters      []clusterJSON `json:"clusters"`
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func newColorReport(cfg *config, q *colorcluster.Quantized) reportJSON {
	rep := reportJSON{
		K:          len(q.Colors),
		Space:      cfg.space,
		Palette:    cfg.palette,
		Iterations: q.Result.Iterations,
		Converged:  q.Result.Converged,
		Inertia:    q.Result.Inertia,
	}
	if cfg.pal != nil {
		rep.PaletteColors = cfg.pal.Hex()
	}
	sizes := q.Sizes()
	for i, c := range q.Colors {
		rep.Clusters = append(rep.Clusters, clusterJSON{
			Label:    i,
			Color:    hex(c),
			Painted:  hex(q.Painted[i]),
			Centroid: q.Result.Centroids[i],
			Size:     sizes[i],
		})
	}
	return rep
}

func newPointReport(res *colorcluster.Result) reportJSON {
	rep := reportJSON{
		K:          len(res.Centroids),
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Inertia:    res.Inertia,
	}
	sizes := res.Sizes()
	for i, c := range res.Centroids {
		rep.Clusters = append(rep.Clusters, clusterJSON{Label: i, Centroid: c, Size: sizes[i]})
	}
	return rep
}

func writeColors(path string, rep reportJSON) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(append(data, '\n'))
		return err
	})
}

// writeCSVResult prints one "centroid" record per cluster followed by one
// "label" record per point, in input order.
func writeCSVResult(w io.Writer, res *colorcluster.Result) error {
	cw := csv.NewWriter(w)
	for i, c := range res.Centroids {
		record := []string{"centroid", strconv.Itoa(i)}
		for _, v := range c {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	for i, l := range res.Labels() {
		if err := cw.Write([]string{"label", strconv.Itoa(i), strconv.Itoa(l)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
