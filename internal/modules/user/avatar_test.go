package user

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessAvatarPNG(t *testing.T) {
	data, ext, err := processAvatar(pngBytes(t, 64, 64))
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestProcessAvatarDownscalesLargeImages(t *testing.T) {
	data, _, err := processAvatar(pngBytes(t, 1024, 768))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 512)
	assert.LessOrEqual(t, img.Bounds().Dy(), 512)
}

func TestProcessAvatarRejectsUnsupportedType(t *testing.T) {
	_, _, err := processAvatar([]byte("GIF89a not really an image"))
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestProcessAvatarRejectsEmpty(t *testing.T) {
	_, _, err := processAvatar(nil)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestProcessAvatarRejectsOversized(t *testing.T) {
	_, _, err := processAvatar(make([]byte, MaxAvatarBytes+1))
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestUploadAvatarReplacesPreviousBlob(t *testing.T) {
	repo := seedUsers()
	blobs := newFakeBlobStore()
	svc := newTestService(repo, blobs)

	u, err := svc.UploadAvatar(context.Background(), staffActor, 3, pngBytes(t, 32, 32))
	require.NoError(t, err)
	require.NotNil(t, u.AvatarURL)
	assert.Len(t, blobs.saved, 1)
	assert.Empty(t, blobs.deleted)

	first := *u.AvatarURL
	u, err = svc.UploadAvatar(context.Background(), staffActor, 3, pngBytes(t, 32, 32))
	require.NoError(t, err)
	// A fresh key each time; the first blob is cleaned up afterwards.
	assert.NotEqual(t, first, *u.AvatarURL)
	assert.Len(t, blobs.saved, 2)
	require.Len(t, blobs.deleted, 1)
	assert.Equal(t, keyFromURL(first), blobs.deleted[0])
}

func TestUploadAvatarSurvivesDeleteFailure(t *testing.T) {
	repo := seedUsers()
	blobs := newFakeBlobStore()
	blobs.deleteErr = assert.AnError
	svc := newTestService(repo, blobs)

	_, err := svc.UploadAvatar(context.Background(), staffActor, 3, pngBytes(t, 32, 32))
	require.NoError(t, err)
	u, err := svc.UploadAvatar(context.Background(), staffActor, 3, pngBytes(t, 32, 32))
	require.NoError(t, err)
	assert.NotNil(t, u.AvatarURL)
}

func TestRemoveAvatar(t *testing.T) {
	repo := seedUsers()
	blobs := newFakeBlobStore()
	svc := newTestService(repo, blobs)

	_, err := svc.UploadAvatar(context.Background(), staffActor, 3, pngBytes(t, 32, 32))
	require.NoError(t, err)

	u, err := svc.RemoveAvatar(context.Background(), staffActor, 3)
	require.NoError(t, err)
	assert.Nil(t, u.AvatarURL)
	assert.Len(t, blobs.deleted, 1)
}

func TestManagerCannotUploadAvatarForAdmin(t *testing.T) {
	svc := newTestService(seedUsers(), newFakeBlobStore())

	_, err := svc.UploadAvatar(context.Background(), managerActor, 1, pngBytes(t, 32, 32))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
