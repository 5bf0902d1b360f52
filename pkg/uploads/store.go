// Package uploads sipariş sihirbazında yüklenen dosyaları (logo, eklenti
// görselleri, ödeme dekontu) sipariş gönderilene kadar diskte tutar.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"go.uber.org/zap"
)

// MaxSize tek dosya için üst sınır (10 MB).
const MaxSize int64 = 10 << 20

// LogoMaxWidth bu genişlikten büyük logolar küçültülür.
const LogoMaxWidth uint = 800

var (
	ErrTooLarge        = errors.New("uploads: file exceeds the 10 MB limit")
	ErrUnsupportedType = errors.New("uploads: unsupported file type")
	ErrEmpty           = errors.New("uploads: file is empty")
	ErrInvalidPath     = errors.New("uploads: invalid file path")
)

// Kind yüklemenin amacı; kabul edilen türleri belirler.
type Kind string

const (
	KindLogo         Kind = "logo"
	KindAddonImage   Kind = "addon"
	KindPaymentProof Kind = "proof"
)

var extensions = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

func (k Kind) accepts(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	case "application/pdf":
		return k == KindPaymentProof
	}
	return false
}

// Store dosyaları tek bir dizin altında uuid isimleriyle saklar.
type Store struct {
	dir string
}

// NewStore dizini (yoksa) oluşturur.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir saklama dizini.
func (s *Store) Dir() string { return s.dir }

// SaveHeader fiber/net-http'den gelen multipart dosyasını kaydeder.
func (s *Store) SaveHeader(kind Kind, fh *multipart.FileHeader) (orderwizard.File, error) {
	if fh.Size > MaxSize {
		return orderwizard.File{}, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return orderwizard.File{}, fmt.Errorf("uploads: open upload: %w", err)
	}
	defer f.Close()
	return s.Save(kind, fh.Filename, f)
}

// Save içeriği doğrular, gerekirse küçültür ve diske yazar. Dönen File.Path
// dizine göre göreli dosya adıdır.
func (s *Store) Save(kind Kind, filename string, r io.Reader) (orderwizard.File, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return orderwizard.File{}, fmt.Errorf("uploads: read: %w", err)
	}
	if len(data) == 0 {
		return orderwizard.File{}, ErrEmpty
	}
	if int64(len(data)) > MaxSize {
		return orderwizard.File{}, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !kind.accepts(contentType) {
		return orderwizard.File{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	if kind == KindLogo {
		data = shrinkLogo(data, contentType)
	}

	name := uuid.NewString() + extensions[contentType]
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return orderwizard.File{}, fmt.Errorf("uploads: write %s: %w", name, err)
	}

	return orderwizard.File{
		Name:        filepath.Base(filename),
		Path:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// shrinkLogo genişliği LogoMaxWidth'i aşan png/jpeg logoları orantılı küçültür.
// Çözülemeyen görseller (webp dahil) olduğu gibi saklanır.
func shrinkLogo(data []byte, contentType string) []byte {
	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return data
	}
	if err != nil {
		configslog.Log.Warn("Logo çözülemedi, orijinal saklanıyor", zap.Error(err))
		return data
	}
	if uint(img.Bounds().Dx()) <= LogoMaxWidth {
		return data
	}

	resized := resize.Resize(LogoMaxWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		configslog.Log.Warn("Logo yeniden kodlanamadı, orijinal saklanıyor", zap.Error(err))
		return data
	}
	return buf.Bytes()
}

// Open kaydedilmiş dosyayı okur. orderwizard.Opener arayüzünü karşılar.
func (s *Store) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Remove dosyaları siler; eksik dosyalar yok sayılır.
func (s *Store) Remove(files ...orderwizard.File) {
	for _, f := range files {
		full, err := s.resolve(f.Path)
		if err != nil {
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			configslog.Log.Warn("Yüklenen dosya silinemedi", zap.String("path", f.Path), zap.Error(err))
		}
	}
}

// resolve yalnızca dizin içindeki düz dosya adlarına izin verir.
func (s *Store) resolve(path string) (string, error) {
	if path == "" || path != filepath.Base(path) || strings.HasPrefix(path, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return filepath.Join(s.dir, path), nil
}

var _ orderwizard.Opener = (*Store)(nil)
