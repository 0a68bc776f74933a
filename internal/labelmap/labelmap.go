// Package labelmap stores per-pixel cluster labels in a compact file.
//
// Layout:
//
//	"CCLM"      magic
//	version     1 byte
//	k           uvarint
//	width       uvarint
//	height      uvarint
//	payload     zstd stream of little-endian uint64 words
//
// The payload holds width*height labels, row-major, each packed MSB first
// into bitconv.Width(k) bits.
package labelmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/colorcluster/internal/bitconv"
)

const (
	magic   = "CCLM"
	Version = 1

	// maxPixels bounds the allocation made for a decoded header.
	maxPixels = 1 << 30
)

var (
	ErrBadMagic           = errors.New("labelmap: bad magic")
	ErrUnsupportedVersion = errors.New("labelmap: unsupported version")
	ErrLabelRange         = errors.New("labelmap: label out of range")
	ErrCorrupt            = errors.New("labelmap: corrupt file")
)

// Map is a row-major grid of cluster labels in [0,K).
type Map struct {
	K      int
	Width  int
	Height int
	Labels []int
}

func (m *Map) At(x, y int) int { return m.Labels[y*m.Width+x] }

func (m *Map) validate() error {
	if m.K < 1 {
		return fmt.Errorf("%w: k=%d", ErrLabelRange, m.K)
	}
	if m.Width < 0 || m.Height < 0 || len(m.Labels) != m.Width*m.Height {
		return fmt.Errorf("labelmap: %d labels for %dx%d", len(m.Labels), m.Width, m.Height)
	}
	for i, l := range m.Labels {
		if l < 0 || l >= m.K {
			return fmt.Errorf("%w: label %d at %d, k=%d", ErrLabelRange, l, i, m.K)
		}
	}
	return nil
}

func Encode(w io.Writer, m *Map) error {
	if err := m.validate(); err != nil {
		return err
	}

	header := append([]byte(magic), Version)
	header = binary.AppendUvarint(header, uint64(m.K))
	header = binary.AppendUvarint(header, uint64(m.Width))
	header = binary.AppendUvarint(header, uint64(m.Height))
	if _, err := w.Write(header); err != nil {
		return err
	}

	bw := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range bitconv.UintsToBools(m.Labels, bitconv.Width(m.K)) {
		bw.WriteBool(b)
	}
	words := bw.Data()
	payload := make([]byte, 0, len(words)*8)
	for _, v := range words {
		payload = binary.LittleEndian.AppendUint64(payload, v)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("labelmap: create compressor: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func Decode(r io.Reader) (*Map, error) {
	br := bufio.NewReader(r)

	head := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if string(head[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := head[len(magic)]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	var dims [3]uint64
	for i := range dims {
		v, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
		}
		dims[i] = v
	}
	k, width, height := dims[0], dims[1], dims[2]
	if k < 1 || k > maxPixels || width > maxPixels || height > maxPixels || width*height > maxPixels {
		return nil, fmt.Errorf("%w: k=%d size %dx%d", ErrCorrupt, k, width, height)
	}

	m := &Map{K: int(k), Width: int(width), Height: int(height)}
	n := m.Width * m.Height
	bitWidth := bitconv.Width(m.K)
	nbits := n * bitWidth
	nwords := (nbits + 63) / 64

	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}
	defer dec.Close()
	payload := make([]byte, nwords*8)
	if _, err := io.ReadFull(dec, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}
	words := make([]uint64, nwords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(payload[i*8:])
	}

	reader := bitstream.NewBitReader(words, 0, 0)
	reader.SetBits(nbits)
	bits := make([]bool, nbits)
	for i := range bits {
		bits[i], _ = reader.ReadBitAt(i)
	}
	m.Labels = bitconv.BoolsToUints(bits, bitWidth)
	for i, l := range m.Labels {
		if l >= m.K {
			return nil, fmt.Errorf("%w: label %d at %d, k=%d", ErrLabelRange, l, i, m.K)
		}
	}
	return m, nil
}
