package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeterrentCapture(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	capture := &DeterrentCapture{Clock: clock, Timeout: 200 * time.Millisecond}

	t.Run("stamps and encodes a jpeg", func(t *testing.T) {
		cam := newFakeCamera(2, solidFrame)
		out, err := capture.Capture(ctx, cam)
		require.NoError(t, err)
		require.True(t, cam.stream.allStopped())

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())

		// Banner area is red, the rest of the black frame is not.
		r, g, b, _ := img.At(300, 5).RGBA()
		require.Greater(t, r, uint32(0x8000))
		require.Less(t, g, uint32(0x4000))
		require.Less(t, b, uint32(0x4000))
		r, _, _, _ = img.At(160, 120).RGBA()
		require.Less(t, r, uint32(0x2000))
	})

	t.Run("frame error still stops every track", func(t *testing.T) {
		cam := newFakeCamera(3, func(context.Context) (image.Image, error) {
			return nil, errors.New("hardware busy")
		})
		_, err := capture.Capture(ctx, cam)
		require.ErrorContains(t, err, "hardware busy")
		require.True(t, cam.stream.allStopped())
	})

	t.Run("panic after acquisition still stops every track", func(t *testing.T) {
		cam := newFakeCamera(2, func(context.Context) (image.Image, error) {
			panic("driver crashed")
		})
		_, err := capture.Capture(ctx, cam)
		require.ErrorContains(t, err, "panicked")
		require.True(t, cam.stream.allStopped())
	})

	t.Run("timeout releases the camera", func(t *testing.T) {
		cam := newFakeCamera(2, func(ctx context.Context) (image.Image, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		_, err := capture.Capture(ctx, cam)
		require.ErrorIs(t, err, ErrCaptureTimeout)
		require.Eventually(t, cam.stream.allStopped, time.Second, 10*time.Millisecond)
	})

	t.Run("open failure and missing camera", func(t *testing.T) {
		cam := &fakeCamera{openErr: errors.New("permission revoked")}
		_, err := capture.Capture(ctx, cam)
		require.ErrorContains(t, err, "permission revoked")

		_, err = capture.Capture(ctx, nil)
		require.ErrorIs(t, err, ErrCameraUnavailable)
	})

	t.Run("uploaded frame", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48)), nil))

		out, err := capture.Capture(ctx, UploadedFrame(buf.Bytes()))
		require.NoError(t, err)
		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		require.Equal(t, 64, img.Bounds().Dx())

		_, err = capture.Capture(ctx, UploadedFrame(nil))
		require.ErrorIs(t, err, ErrCameraUnavailable)

		_, err = capture.Capture(ctx, UploadedFrame("not an image"))
		require.ErrorContains(t, err, "decode frame")
	})
}
