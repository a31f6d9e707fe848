package geolocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupported means no location capability is configured
	ErrUnsupported = errors.New("geolocation is not supported")

	// ErrUnavailable means the capability exists but produced no position
	ErrUnavailable = errors.New("location unavailable")
)

// Position is a device location
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the current device position
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// StaticLocator always reports a fixed position
type StaticLocator struct {
	Position Position
}

// Locate implements Locator
func (s StaticLocator) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return s.Position, nil
}

// FromSetting builds a Locator from a setting value:
//
//	"ip" or ""   IP-based lookup
//	"off"        no capability (nil Locator)
//	"lat,lon"    fixed coordinates
func FromSetting(setting string) (Locator, error) {
	setting = strings.TrimSpace(strings.ToLower(setting))
	switch setting {
	case "", "ip":
		return NewIPLocator(), nil
	case "off", "none":
		return nil, nil
	}

	pos, err := ParsePosition(setting)
	if err != nil {
		return nil, fmt.Errorf("invalid locator setting %q: %w", setting, err)
	}
	return StaticLocator{Position: pos}, nil
}

// ParsePosition parses "lat,lon"
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("expected 'lat,lon'")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("parsing longitude: %w", err)
	}

	if lat < -90 || lat > 90 {
		return Position{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return Position{}, fmt.Errorf("longitude %v out of range", lon)
	}
	return Position{Latitude: lat, Longitude: lon}, nil
}
