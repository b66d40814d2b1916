package weather

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/i474232898/prognoza/internal/units"
)

var (
	// ErrThrottled means the provider refused to serve us for now: rate
	// limited, or the circuit to it is open.
	ErrThrottled = errors.New("provider throttled")
	// ErrProviderUnavailable means the provider failed on its side.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrProviderRejected means the provider rejected the request itself.
	ErrProviderRejected = errors.New("provider rejected request")
)

// Reason explains why fresh data could not be shown. It is carried as data
// and never returned as an error.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNetwork   Reason = "network"
	ReasonProvider  Reason = "provider"
	ReasonThrottled Reason = "throttled"
	ReasonClient    Reason = "client"
	ReasonNoData    Reason = "no_data"
	ReasonUnknown   Reason = "unknown"
)

// Message is the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonNetwork:
		return "The forecast provider could not be reached."
	case ReasonProvider:
		return "The forecast provider is having problems."
	case ReasonThrottled:
		return "Too many requests were made to the forecast provider, try again later."
	case ReasonClient:
		return "The forecast provider could not serve this place."
	case ReasonNoData:
		return "There is no forecast data for this place yet."
	default:
		return "Something went wrong while fetching the forecast."
	}
}

// ClassifyError maps a fetch error to the reason shown to users.
func ClassifyError(err error) Reason {
	var netErr net.Error
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrThrottled):
		return ReasonThrottled
	case errors.Is(err, ErrProviderUnavailable):
		return ReasonProvider
	case errors.Is(err, ErrProviderRejected):
		return ReasonClient
	case errors.Is(err, ErrNoProviders):
		return ReasonNoData
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return ReasonNetwork
	default:
		return ReasonUnknown
	}
}

// Meta is the provenance of cached forecast data.
type Meta struct {
	PlaceID   string    `json:"placeId"`
	Provider  string    `json:"provider"`
	FetchedAt time.Time `json:"fetchedAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Units the data was rendered in, zero until it is rendered.
	Units units.Preferences `json:"units"`
}

func (m Meta) Expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}

// Selection is what a user currently looks at.
type Selection struct {
	PlaceID string
	Units   units.Preferences
}

// Stale reports whether data described by m must be reloaded for sel.
func (m Meta) Stale(now time.Time, sel Selection) bool {
	return m.Expired(now) || m.PlaceID != sel.PlaceID || m.Units != sel.Units
}

// Result is one of Success, CachedSuccess or Empty.
type Result interface {
	isResult()
}

// Success holds fresh, non-empty data.
type Success struct {
	Meta  Meta
	Spans TimeSpans
}

// CachedSuccess holds outdated data that is still worth showing, with the
// reason it could not be refreshed.
type CachedSuccess struct {
	Success Success
	Reason  Reason
}

// Empty means there is nothing to show.
type Empty struct {
	Reason Reason
}

func (Success) isResult()       {}
func (CachedSuccess) isResult() {}
func (Empty) isResult()         {}

// ToResult wraps spans with their provenance. No spans always give Empty; a
// reason turns a Success into a CachedSuccess.
func ToResult(spans TimeSpans, meta Meta, reason Reason) Result {
	if len(spans) == 0 {
		return Empty{Reason: reason}
	}
	success := Success{Meta: meta, Spans: spans}
	if reason == ReasonNone {
		return success
	}
	return CachedSuccess{Success: success, Reason: reason}
}
