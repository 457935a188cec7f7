package header

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/astrogo/fitsio"
)

// Card is a single header record.
type Card struct {
	Name    string
	Value   interface{}
	Comment string
}

// Block is the ordered metadata block of one HDU. Record names are not
// guaranteed unique; Lookup returns the first match.
type Block struct {
	cards []Card
}

func (b *Block) Len() int {
	return len(b.cards)
}

func (b *Block) Cards() []Card {
	return b.cards
}

// Lookup returns the first card named name, reporting whether it exists.
func (b *Block) Lookup(name string) (Card, bool) {
	for _, c := range b.cards {
		if c.Name == name {
			return c, true
		}
	}

	return Card{}, false
}

// Unit describes one HDU of a file.
type Unit struct {
	Index int
	Name  string
	Type  string
	Axes  []int
	Block *Block
}

// HasData reports whether the unit carries a data array.
func (u Unit) HasData() bool {
	if len(u.Axes) == 0 {
		return false
	}

	for _, n := range u.Axes {
		if n == 0 {
			return false
		}
	}

	return true
}

var suffixes = []string{
	".fits", ".fit", ".fts",
	".fits.gz", ".fit.gz", ".fts.gz",
}

// Recognized reports whether name carries a FITS filename suffix.
func Recognized(name string) bool {
	lower := strings.ToLower(name)

	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}

	return false
}

type gzFile struct {
	*gzip.Reader
	f *os.File
}

func (g gzFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}

	return err
}

func open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gunzip %s: %w", name, err)
		}

		return gzFile{Reader: zr, f: f}, nil
	}

	return f, nil
}

func newBlock(hdr *fitsio.Header) *Block {
	b := Block{cards: make([]Card, 0, len(hdr.Keys()))}

	for i := range hdr.Keys() {
		c := hdr.Card(i)
		b.cards = append(b.cards, Card{Name: c.Name, Value: c.Value, Comment: c.Comment})
	}

	return &b
}

func typeName(t fitsio.HDUType) string {
	switch t {
	case fitsio.IMAGE_HDU:
		return "IMAGE"
	case fitsio.ASCII_TBL:
		return "ASCII_TBL"
	case fitsio.BINARY_TBL:
		return "BINARY_TBL"
	}

	return "UNKNOWN"
}

// Units reads every HDU of the named file.
func Units(name string) ([]Unit, error) {
	r, err := open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("open fits %s: %w", name, err)
	}
	defer f.Close()

	hdus := f.HDUs()
	units := make([]Unit, 0, len(hdus))

	for i, hdu := range hdus {
		hdr := hdu.Header()
		units = append(units, Unit{
			Index: i,
			Name:  hdu.Name(),
			Type:  typeName(hdu.Type()),
			Axes:  hdr.Axes(),
			Block: newBlock(hdr),
		})
	}

	return units, nil
}

// ReadBlock reads the header block of a single extension, leaving the
// rest of the file alone.
func ReadBlock(name string, ext int) (*Block, error) {
	r, err := open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("open fits %s: %w", name, err)
	}
	defer f.Close()

	if ext < 0 || ext >= len(f.HDUs()) {
		return nil, fmt.Errorf("%s has no extension %d", name, ext)
	}

	return newBlock(f.HDU(ext).Header()), nil
}
