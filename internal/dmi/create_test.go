package dmi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rm-hull/dmi-tools/internal/png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePixelStream(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []byte
	}{
		{"rgb gets opaque alpha", "#ff0000#00FF00", []byte{255, 0, 0, 255, 0, 255, 0, 255}},
		{"rgba keeps alpha", "#ff000080#0000ff00", []byte{255, 0, 0, 128, 0, 0, 255, 0}},
		{"mixed lengths", "#102030#40506070", []byte{16, 32, 48, 255, 64, 80, 96, 112}},
		{"leading text discarded", "ignored#abcdef", []byte{0xab, 0xcd, 0xef, 255}},
		{"empty", "", []byte{}},
		{"no tokens", "nothing here", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePixelStream(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePixelStream_Sizes(t *testing.T) {
	rgb, err := ParsePixelStream(strings.Repeat("#0a0b0c", 7))
	require.NoError(t, err)
	require.Len(t, rgb, 28)
	for i := 3; i < len(rgb); i += 4 {
		assert.Equal(t, byte(255), rgb[i])
	}

	rgba, err := ParsePixelStream(strings.Repeat("#0a0b0c3d", 5))
	require.NoError(t, err)
	require.Len(t, rgba, 20)
	for i := 3; i < len(rgba); i += 4 {
		assert.Equal(t, byte(0x3d), rgba[i])
	}
}

func TestParsePixelStream_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind Kind
	}{
		{"short token", "#ff0000#fff", KindFormat},
		{"seven digits", "#ff00000", KindFormat},
		{"empty token", "#ff0000#", KindFormat},
		{"non hex", "#gg0000", KindParse},
		{"sign is not hex", "#+f0000", KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePixelStream(tt.data)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.kind == KindFormat {
				assert.ErrorIs(t, err, ErrInvalidPngData)
			}
		})
	}
}

func TestCreatePNG(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b", "c.png")

	err := CreatePNG(path, "2", "2", "#ff0000#00ff00#0000ff#ffffff")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "a", "b"))

	img, err := png.Decode(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(2), img.Height)
	assert.Equal(t, png.RGBA, img.ColorType)
	assert.Equal(t, uint8(8), img.BitDepth)
	assert.Empty(t, img.TextChunks)
	assert.Equal(t, []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}, img.Pixels)
}

func TestCreatePNG_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("bad width", func(t *testing.T) {
		err := CreatePNG(filepath.Join(dir, "w.png"), "two", "2", "#ffffff")
		assert.Equal(t, KindParse, KindOf(err))
		assert.ErrorContains(t, err, "failed to parse width")
	})

	t.Run("negative height", func(t *testing.T) {
		err := CreatePNG(filepath.Join(dir, "h.png"), "1", "-1", "#ffffff")
		assert.Equal(t, KindParse, KindOf(err))
	})

	t.Run("bad pixels", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "p.png")
		err := CreatePNG(path, "1", "1", "#fffff")
		assert.Equal(t, KindFormat, KindOf(err))
		assert.NoDirExists(t, filepath.Join(dir, "nested"))
	})

	t.Run("pixel count mismatch", func(t *testing.T) {
		err := CreatePNG(filepath.Join(dir, "m.png"), "2", "2", "#ffffff")
		assert.Equal(t, KindEncode, KindOf(err))
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		err := CreatePNG(filepath.Join(blocker, "x.png"), "1", "1", "#ffffff")
		assert.Equal(t, KindIO, KindOf(err))
	})
}
