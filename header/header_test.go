package header_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickbassham/fitsinfo/header"
)

func encodeFITS(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer

	f, err := fitsio.Create(&buf)
	require.NoError(t, err)

	primary := fitsio.NewImage(8, []int{})
	require.NoError(t, primary.Header().Append(
		fitsio.Card{Name: "EXTNAME", Value: "PRIMARY", Comment: "primary hdu"},
		fitsio.Card{Name: "OBJECT", Value: "M31", Comment: "target"},
	))
	require.NoError(t, f.Write(primary))
	require.NoError(t, primary.Close())

	ext := fitsio.NewImage(8, []int{2, 2})
	require.NoError(t, ext.Header().Append(
		fitsio.Card{Name: "EXTNAME", Value: "SCI", Comment: "science frame"},
		fitsio.Card{Name: "RA", Value: "12:00:00.0", Comment: "right ascension"},
		fitsio.Card{Name: "DEC", Value: "+45:00:00.0", Comment: "declination"},
	))
	data := []int8{1, 2, 3, 4}
	require.NoError(t, ext.Write(&data))
	require.NoError(t, f.Write(ext))
	require.NoError(t, ext.Close())

	require.NoError(t, f.Close())

	return buf.Bytes()
}

func writeFITS(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, encodeFITS(t), 0644))
}

func writeFITSGz(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(encodeFITS(t))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestRecognized(t *testing.T) {
	for _, name := range []string{"a.fits", "a.fit", "a.fts", "a.FITS", "a.fits.gz", "dir/b.fit.gz"} {
		assert.True(t, header.Recognized(name), name)
	}

	for _, name := range []string{"a.txt", "a.fits.bak", "a.gz", "fits", "a.xisf"} {
		assert.False(t, header.Recognized(name), name)
	}
}

func TestUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	writeFITS(t, path)

	units, err := header.Units(path)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, 0, units[0].Index)
	assert.Equal(t, "PRIMARY", units[0].Name)
	assert.Equal(t, "IMAGE", units[0].Type)
	assert.False(t, units[0].HasData())

	card, ok := units[0].Block.Lookup("OBJECT")
	require.True(t, ok)
	assert.Equal(t, "M31", card.Value)

	assert.Equal(t, 1, units[1].Index)
	assert.Equal(t, "SCI", units[1].Name)
	assert.Equal(t, []int{2, 2}, units[1].Axes)
	assert.True(t, units[1].HasData())

	_, ok = units[1].Block.Lookup("NOPE")
	assert.False(t, ok)
}

func TestUnitsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits.gz")
	writeFITSGz(t, path)

	units, err := header.Units(path)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "SCI", units[1].Name)
}

func TestUnitsMissingFile(t *testing.T) {
	_, err := header.Units(filepath.Join(t.TempDir(), "nope.fits"))
	assert.Error(t, err)
}

func TestUnitsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.fits")
	require.NoError(t, os.WriteFile(path, []byte("this is not a fits file"), 0644))

	_, err := header.Units(path)
	assert.Error(t, err)
}

func TestReadBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	writeFITS(t, path)

	blk, err := header.ReadBlock(path, 1)
	require.NoError(t, err)

	card, ok := blk.Lookup("RA")
	require.True(t, ok)
	assert.Equal(t, "12:00:00.0", card.Value)
	assert.Equal(t, "right ascension", card.Comment)

	card, ok = blk.Lookup("DEC")
	require.True(t, ok)
	assert.Equal(t, "+45:00:00.0", card.Value)
}

func TestReadBlockBadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	writeFITS(t, path)

	_, err := header.ReadBlock(path, 5)
	assert.Error(t, err)

	_, err = header.ReadBlock(path, -1)
	assert.Error(t, err)
}

func TestBlockOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	writeFITS(t, path)

	blk, err := header.ReadBlock(path, 1)
	require.NoError(t, err)

	var ra, dec int
	for i, c := range blk.Cards() {
		switch c.Name {
		case "RA":
			ra = i
		case "DEC":
			dec = i
		}
	}

	assert.Equal(t, ra+1, dec, "DEC should directly follow RA")
	assert.Equal(t, blk.Len(), len(blk.Cards()))
}
