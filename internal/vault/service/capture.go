package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultCaptureTimeout bounds acquisition plus encoding of one frame.
	DefaultCaptureTimeout = 5 * time.Second

	captureBanner  = "SECURITY ALERT - UNAUTHORIZED ACCESS ATTEMPT"
	captureQuality = 80
	bannerHeight   = 40
)

var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrCaptureTimeout    = errors.New("capture timed out")
)

// DeterrentCapture grabs one frame, stamps it and returns a JPEG.
type DeterrentCapture struct {
	Clock    Clock
	Timeout  time.Duration
	Location *time.Location
}

// Capture acquires cam, takes a single frame and releases every track
// before returning, whatever the outcome.
func (c *DeterrentCapture) Capture(ctx context.Context, cam CameraDevice) ([]byte, error) {
	if cam == nil {
		return nil, ErrCameraUnavailable
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		img []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := c.grab(ctx, cam)
		ch <- result{img, err}
	}()

	select {
	case r := <-ch:
		return r.img, r.err
	case <-ctx.Done():
		return nil, ErrCaptureTimeout
	}
}

func (c *DeterrentCapture) grab(ctx context.Context, cam CameraDevice) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("capture panicked: %v", r)
		}
	}()

	stream, err := cam.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open camera: %w", err)
	}
	defer stopTracks(stream)

	frame, err := stream.Frame(ctx)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return c.stamp(frame)
}

func stopTracks(s MediaStream) {
	for _, t := range s.Tracks() {
		t.Stop()
	}
}

// stamp draws the warning banner and a timestamp and encodes as JPEG.
func (c *DeterrentCapture) stamp(src image.Image) ([]byte, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, errors.New("empty frame")
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	banner := image.Rect(0, 0, w, min(bannerHeight, h))
	draw.Draw(dst, banner, image.NewUniform(color.NRGBA{R: 255, A: 204}), image.Point{}, draw.Over)

	now := nowFrom(c.Clock)
	if c.Location != nil {
		now = now.In(c.Location)
	}

	d := font.Drawer{Dst: dst, Src: image.White, Face: basicfont.Face7x13}
	d.Dot = fixed.P(10, min(25, h))
	d.DrawString(captureBanner)
	d.Dot = fixed.P(10, max(h-10, 0))
	d.DrawString(now.Format("2006-01-02 15:04:05 MST"))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: captureQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadedFrame is a camera backed by a still the browser sent with the
// request. The browser only sends one when camera permission was granted.
type UploadedFrame []byte

func (u UploadedFrame) Open(ctx context.Context) (MediaStream, error) {
	if len(u) == 0 {
		return nil, ErrCameraUnavailable
	}
	return &uploadedStream{data: u, track: &uploadedTrack{}}, nil
}

type uploadedStream struct {
	data  []byte
	track *uploadedTrack
}

func (s *uploadedStream) Tracks() []MediaTrack { return []MediaTrack{s.track} }

func (s *uploadedStream) Frame(ctx context.Context) (image.Image, error) {
	if s.track.stopped {
		return nil, ErrCameraUnavailable
	}
	img, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

type uploadedTrack struct {
	stopped bool
}

func (t *uploadedTrack) Stop() { t.stopped = true }
