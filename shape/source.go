package shape

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
)

// Source is a parsed font file. It implements [termframe.FaceRef]: the
// reference count tracks how many FontFace handles point at it, and
// Refs lets the owner decide when the underlying data can be dropped.
//
// The parsed *font.Font is read-only and safe for concurrent use;
// per-shape font.Face instances are created on demand because font.Face
// is not.
type Source struct {
	data []byte
	font *font.Font
	refs atomic.Int32
}

// NewSource parses TTF/OTF font data.
func NewSource(data []byte) (*Source, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("shape: parse font: %w", err)
	}
	return &Source{data: data, font: face.Font}, nil
}

// Font returns the parsed font, shared and read-only.
func (s *Source) Font() *font.Font {
	return s.font
}

// Retain increments the handle count.
func (s *Source) Retain() {
	s.refs.Add(1)
}

// Release decrements the handle count.
func (s *Source) Release() {
	s.refs.Add(-1)
}

// Refs returns the current handle count.
func (s *Source) Refs() int {
	return int(s.refs.Load())
}
