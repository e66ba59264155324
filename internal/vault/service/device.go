package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
)

// DefaultLocationTimeout bounds a location lookup during login.
const DefaultLocationTimeout = 5 * time.Second

// ClientContext is what a request tells us about the browser.
type ClientContext struct {
	UserAgent string
	Platform  string
	Language  string
	Screen    string
	Timezone  string
	IP        string
	Latitude  *float64
	Longitude *float64
}

func (c ClientContext) hint() LocationHint {
	return LocationHint{IP: c.IP, Latitude: c.Latitude, Longitude: c.Longitude}
}

// DeviceCollector builds device snapshots and bounded location lookups.
type DeviceCollector struct {
	Location LocationProvider
	Timeout  time.Duration
}

// Collect returns the device snapshot with its fingerprint.
func (c DeviceCollector) Collect(cc ClientContext) domain.DeviceInfo {
	d := domain.DeviceInfo{
		UserAgent: cc.UserAgent,
		Platform:  cc.Platform,
		Language:  cc.Language,
		Screen:    cc.Screen,
		Timezone:  cc.Timezone,
	}
	d.Fingerprint = Fingerprint(d)
	return d
}

// Fingerprint hashes the stable device attributes. It is advisory only and
// identical inputs always give the same value.
func Fingerprint(d domain.DeviceInfo) string {
	stable := struct {
		UserAgent string `json:"userAgent"`
		Platform  string `json:"platform"`
		Language  string `json:"language"`
		Screen    string `json:"screen"`
		Timezone  string `json:"timezone"`
	}{d.UserAgent, d.Platform, d.Language, d.Screen, d.Timezone}

	// Marshalling a fixed struct of strings cannot fail.
	b, _ := json.Marshal(stable)
	return cryptox.FingerprintToken(string(b))
}

// CollectLocation resolves the client's location, returning the unknown
// placeholder on error or when the timeout elapses. It never fails.
func (c DeviceCollector) CollectLocation(ctx context.Context, cc ClientContext) domain.LocationInfo {
	fallback := domain.UnknownLocation(cc.IP)
	if c.Location == nil {
		return fallback
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultLocationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		loc domain.LocationInfo
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: errors.New("location provider panicked")}
			}
		}()
		loc, err := c.Location.Locate(ctx, cc.hint())
		ch <- result{loc, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback
		}
		if r.loc.IP == "" {
			r.loc.IP = cc.IP
		}
		return r.loc
	case <-ctx.Done():
		return fallback
	}
}

var ErrNoCoordinates = errors.New("no coordinates reported")

// ReportedLocation trusts the coordinates the browser sent with the request.
// Country and city stay unknown since no reverse lookup is done.
type ReportedLocation struct{}

func (ReportedLocation) Locate(ctx context.Context, hint LocationHint) (domain.LocationInfo, error) {
	if hint.Latitude == nil || hint.Longitude == nil {
		return domain.LocationInfo{}, ErrNoCoordinates
	}
	loc := domain.UnknownLocation(hint.IP)
	loc.Latitude = *hint.Latitude
	loc.Longitude = *hint.Longitude
	return loc, nil
}
