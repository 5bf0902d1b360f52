package uploads

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStore_SaveLogoShrinksWideImages(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	f, err := s.Save(KindLogo, "company logo.png", bytes.NewReader(pngBytes(t, 1600, 400)))
	require.NoError(t, err)
	assert.Equal(t, "company logo.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.True(t, strings.HasSuffix(f.Path, ".png"))

	rc, err := s.Open(f.Path)
	require.NoError(t, err)
	defer rc.Close()
	cfg, err := png.DecodeConfig(rc)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestStore_SaveKeepsSmallImages(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	src := pngBytes(t, 120, 40)
	f, err := s.Save(KindLogo, "small.png", bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), f.Size)
}

func TestStore_RejectsUnsupportedTypes(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(KindAddonImage, "notes.txt", strings.NewReader("just some text"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	pdf := "%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"
	_, err = s.Save(KindLogo, "logo.pdf", strings.NewReader(pdf))
	require.ErrorIs(t, err, ErrUnsupportedType)

	f, err := s.Save(KindPaymentProof, "receipt.pdf", strings.NewReader(pdf))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)

	_, err = s.Save(KindPaymentProof, "empty.pdf", strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestStore_RejectsOversizedFiles(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	big := io.MultiReader(bytes.NewReader(pngBytes(t, 2, 2)), bytes.NewReader(make([]byte, MaxSize)))
	_, err = s.Save(KindAddonImage, "big.png", big)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestStore_OpenAndRemoveStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	_, err = s.Open("../etc/passwd")
	require.ErrorIs(t, err, ErrInvalidPath)
	_, err = s.Open("")
	require.ErrorIs(t, err, ErrInvalidPath)

	f, err := s.Save(KindAddonImage, "a.png", bytes.NewReader(pngBytes(t, 4, 4)))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, f.Path))
	require.NoError(t, err)

	s.Remove(f, f)
	_, err = os.Stat(filepath.Join(dir, f.Path))
	assert.True(t, os.IsNotExist(err))
}
