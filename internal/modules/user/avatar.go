package user

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/envoyhq/envoy-backend/internal/apperr"
)

// MaxAvatarBytes is the upload size ceiling.
const MaxAvatarBytes = 5 << 20

// avatarMaxDim bounds the stored image; larger uploads are scaled down.
const avatarMaxDim = 512

// BlobStore persists avatar image blobs. Save returns the public URL for the
// stored key.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// DiskStore keeps blobs on the local filesystem, served under /uploads/.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStore) Save(_ context.Context, key string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/uploads/" + key, nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.dir, key))
}

// Dir is the on-disk root, for wiring the static file server.
func (s *DiskStore) Dir() string { return s.dir }

// keyFromURL recovers the blob key from a stored avatar URL.
func keyFromURL(url string) string {
	key := path.Base(url)
	if key == "." || key == "/" {
		return ""
	}
	return key
}

var avatarExts = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// processAvatar validates an uploaded image against the MIME allow-list and
// size limit, scales it down to fit avatarMaxDim, and re-encodes it in its
// original format. Returns the encoded bytes and the file extension.
func processAvatar(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", apperr.New(apperr.Invalid, "avatar image is empty")
	}
	if len(data) > MaxAvatarBytes {
		return nil, "", apperr.New(apperr.Invalid, "avatar image exceeds 5 MB")
	}

	mime := http.DetectContentType(data)
	ext, ok := avatarExts[mime]
	if !ok {
		return nil, "", apperr.Newf(apperr.Invalid, "unsupported image type %s", mime)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Invalid, "could not decode avatar image", err)
	}
	if img.Bounds().Dx() > avatarMaxDim || img.Bounds().Dy() > avatarMaxDim {
		img = imaging.Fit(img, avatarMaxDim, avatarMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch mime {
	case "image/png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "image/jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90))
	case "image/webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: 90})
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Invalid, "could not encode avatar image", err)
	}
	return buf.Bytes(), ext, nil
}
