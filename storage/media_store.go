// Package storage menyimpan gambar laporan di disk lokal.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxSize batas ukuran gambar (5 MB).
const DefaultMaxSize int64 = 5 << 20

var (
	// ErrFileTooLarge dikembalikan jika file melebihi batas ukuran.
	ErrFileTooLarge = errors.New("ukuran file melebihi batas 5MB")
	// ErrUnsupportedType dikembalikan jika file bukan jpeg/jpg/png/gif.
	ErrUnsupportedType = errors.New("hanya file gambar yang diperbolehkan")
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedMIMEs = []string{"image/jpeg", "image/png", "image/gif"}

// MediaStore menyimpan file di root dir. Path yang dikembalikan relatif
// terhadap direktori kerja dan memakai prefix publik (misal: uploads/xxx.jpg),
// sehingga bisa langsung disajikan lewat route statis /uploads.
type MediaStore struct {
	root    string
	prefix  string
	maxSize int64
}

// NewMediaStore membuat MediaStore dan memastikan direktori upload ada.
func NewMediaStore(root string, maxSize int64) (*MediaStore, error) {
	if root == "" {
		root = "uploads"
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &MediaStore{
		root:    root,
		prefix:  filepath.ToSlash(filepath.Base(filepath.Clean(root))),
		maxSize: maxSize,
	}, nil
}

// Root mengembalikan direktori fisik penyimpanan.
func (s *MediaStore) Root() string { return s.root }

// Prefix mengembalikan prefix path publik (nama direktori upload).
func (s *MediaStore) Prefix() string { return s.prefix }

// Validate mengecek ukuran, ekstensi, dan MIME hasil sniffing isi file.
// Dipanggil sebelum ada data yang ditulis ke database.
func (s *MediaStore) Validate(fh *multipart.FileHeader) error {
	if fh.Size > s.maxSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedType
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("detect mime: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIMEs...) {
		return ErrUnsupportedType
	}
	return nil
}

// Save memvalidasi lalu menyimpan file dengan nama uuid + ekstensi asli.
// Mengembalikan path relatif, misal "uploads/0b1c...e9.jpg".
func (s *MediaStore) Save(fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	// LimitReader menjaga jika Size di header tidak jujur.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil && n > s.maxSize {
		err = ErrFileTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.root, name))
		return "", err
	}

	return path.Join(s.prefix, name), nil
}

// Delete menghapus file berdasarkan path relatif. File yang tidak ada bukan error.
func (s *MediaStore) Delete(relPath string) error {
	full, ok := s.resolve(relPath)
	if !ok {
		return nil
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Exists mengecek apakah file untuk path relatif masih ada di disk.
func (s *MediaStore) Exists(relPath string) bool {
	full, ok := s.resolve(relPath)
	if !ok {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// resolve memetakan path relatif (uploads/xxx.jpg atau uploads\xxx.jpg dari data lama)
// ke path fisik di root. Path yang keluar dari root ditolak.
func (s *MediaStore) resolve(relPath string) (string, bool) {
	rel := strings.ReplaceAll(strings.TrimSpace(relPath), "\\", "/")
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimPrefix(rel, s.prefix+"/")

	name := path.Clean(rel)
	if name == "." || name == "" || strings.HasPrefix(name, "..") || strings.Contains(name, "/") {
		return "", false
	}
	return filepath.Join(s.root, name), true
}
