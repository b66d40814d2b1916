package httpapi

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/prognoza/internal/places"
	"github.com/i474232898/prognoza/internal/units"
	"github.com/i474232898/prognoza/internal/weather"
)

var validate = validator.New()

// renderTTL bounds how long a rendered forecast is reused. Entries are also
// dropped as soon as their data expires.
const renderTTL = 5 * time.Minute

// ForecastService serves forecasts; implemented by *weather.Service.
type ForecastService interface {
	GetForecast(ctx context.Context, placeID string) (weather.Place, weather.Result, error)
	Build(place weather.Place, spans weather.TimeSpans) (weather.Forecast, error)
	Summaries(place weather.Place, spans weather.TimeSpans) []weather.DaySummary
	Icons() weather.IconTable
}

// PlaceService manages places; implemented by *places.Service.
type PlaceService interface {
	Search(ctx context.Context, query string) ([]weather.Place, error)
	List(ctx context.Context) ([]weather.Place, error)
	Save(ctx context.Context, place weather.Place) error
	Delete(ctx context.Context, id string) error
	Default() weather.Place
}

type handler struct {
	forecasts ForecastService
	places    PlaceService
	rendered  *Cache[weather.Selection, forecastResponse]
	now       func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, forecasts ForecastService, placeSvc PlaceService) {
	h := &handler{
		forecasts: forecasts,
		places:    placeSvc,
		rendered:  NewCache[weather.Selection, forecastResponse](renderTTL),
		now:       time.Now,
	}

	v1 := app.Group("/api/v1")
	v1.Get("/forecast", h.getForecast)
	v1.Get("/forecast/days", h.getForecastDays)
	v1.Get("/places", h.searchPlaces)
	v1.Get("/places/saved", h.listPlaces)
	v1.Post("/places", h.savePlace)
	v1.Delete("/places/:id", h.deletePlace)
	v1.Get("/units", h.listUnits)
}

// forecastQuery holds query parameters of the forecast endpoints. Unit
// parameters override the unit system.
type forecastQuery struct {
	Place         string `validate:"omitempty,max=128"`
	System        string `validate:"omitempty,oneof=metric imperial"`
	Temperature   string
	Wind          string
	Precipitation string
	Pressure      string
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	q := forecastQuery{
		Place:         c.Query("place"),
		System:        strings.ToLower(c.Query("units")),
		Temperature:   c.Query("temperature"),
		Wind:          c.Query("wind"),
		Precipitation: c.Query("precipitation"),
		Pressure:      c.Query("pressure"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// preferences resolves the requested units, defaulting to metric.
func (q forecastQuery) preferences() (units.Preferences, error) {
	var p units.Preferences
	var err error
	if q.Temperature != "" {
		if p.Temperature, err = units.ParseTemperatureUnit(q.Temperature); err != nil {
			return p, err
		}
	}
	if q.Wind != "" {
		if p.Wind, err = units.ParseSpeedUnit(q.Wind); err != nil {
			return p, err
		}
	}
	if q.Precipitation != "" {
		if p.Precipitation, err = units.ParseLengthUnit(q.Precipitation); err != nil {
			return p, err
		}
	}
	if q.Pressure != "" {
		if p.Pressure, err = units.ParsePressureUnit(q.Pressure); err != nil {
			return p, err
		}
	}
	if q.System == "imperial" {
		return p.WithDefaults(units.Imperial()), nil
	}
	return p.WithDefaults(units.Metric()), nil
}

func (h *handler) selection(c *fiber.Ctx) (weather.Selection, error) {
	q, err := parseForecastQuery(c)
	if err != nil {
		return weather.Selection{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	prefs, err := q.preferences()
	if err != nil {
		return weather.Selection{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	sel := weather.Selection{PlaceID: q.Place, Units: prefs}
	if sel.PlaceID == "" {
		sel.PlaceID = h.places.Default().ID
	}
	return sel, nil
}

func (h *handler) getForecast(c *fiber.Ctx) error {
	sel, err := h.selection(c)
	if err != nil {
		return err
	}

	if cached, ok := h.rendered.Get(sel); ok && cached.fresh(h.now(), sel) {
		return c.JSON(cached)
	}

	place, result, err := h.forecasts.GetForecast(c.UserContext(), sel.PlaceID)
	if err != nil {
		return placeError(err)
	}

	resp := forecastResponse{Place: place}
	r := renderer{prefs: sel.Units, icons: h.forecasts.Icons()}
	meta, spans, ok := h.unwrap(result, &resp)
	if ok {
		forecast, err := h.forecasts.Build(place, spans)
		if err != nil {
			// Spans without temperatures cannot be shown.
			log.Printf("ERROR: building forecast for %s: %v", place.ID, err)
			resp = emptyResponse(place, weather.ReasonNoData)
		} else {
			meta.Units = sel.Units
			resp.Meta = newMetaView(meta)
			resp.Forecast = r.forecast(forecast)
			resp.validUntil = meta.ExpiresAt
			if end := spans[0].End; end.Before(resp.validUntil) {
				resp.validUntil = end
			}
		}
	}

	if resp.Status == statusSuccess {
		h.rendered.Set(sel, resp)
	}
	return c.JSON(resp)
}

func (h *handler) getForecastDays(c *fiber.Ctx) error {
	sel, err := h.selection(c)
	if err != nil {
		return err
	}

	place, result, err := h.forecasts.GetForecast(c.UserContext(), sel.PlaceID)
	if err != nil {
		return placeError(err)
	}

	resp := forecastResponse{Place: place}
	meta, spans, ok := h.unwrap(result, &resp)
	if ok {
		meta.Units = sel.Units
		resp.Meta = newMetaView(meta)
		r := renderer{prefs: sel.Units, icons: h.forecasts.Icons()}
		resp.Days = r.summaries(h.forecasts.Summaries(place, spans))
	}
	return c.JSON(resp)
}

// unwrap fills the status of resp from result and returns the data to render.
func (h *handler) unwrap(result weather.Result, resp *forecastResponse) (weather.Meta, weather.TimeSpans, bool) {
	switch r := result.(type) {
	case weather.Success:
		resp.Status = statusSuccess
		return r.Meta, r.Spans, true
	case weather.CachedSuccess:
		resp.Status = statusCached
		resp.Reason = r.Reason
		resp.Message = r.Reason.Message()
		return r.Success.Meta, r.Success.Spans, true
	case weather.Empty:
		*resp = emptyResponse(resp.Place, r.Reason)
	default:
		*resp = emptyResponse(resp.Place, weather.ReasonUnknown)
	}
	return weather.Meta{}, nil, false
}

func emptyResponse(place weather.Place, reason weather.Reason) forecastResponse {
	if reason == weather.ReasonNone {
		reason = weather.ReasonNoData
	}
	return forecastResponse{
		Status:  statusEmpty,
		Reason:  reason,
		Message: reason.Message(),
		Place:   place,
	}
}

// fresh reports whether a rendered response can be served again for sel.
// It goes stale with its data or once its current hour is over.
func (r forecastResponse) fresh(now time.Time, sel weather.Selection) bool {
	if r.Meta == nil {
		return false
	}
	meta := weather.Meta{PlaceID: r.Place.ID, ExpiresAt: r.validUntil, Units: r.Meta.Units}
	return !meta.Stale(now, sel)
}

func placeError(err error) error {
	if errors.Is(err, weather.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "unknown place")
	}
	log.Printf("ERROR: resolving place: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load place")
}

// searchQuery holds query parameters of the place search.
type searchQuery struct {
	Q string `validate:"required,min=2,max=128"`
}

func (h *handler) searchPlaces(c *fiber.Ctx) error {
	q := searchQuery{Q: strings.TrimSpace(c.Query("q"))}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	found, err := h.places.Search(c.UserContext(), q.Q)
	if err != nil {
		switch weather.ClassifyError(err) {
		case weather.ReasonThrottled:
			return fiber.NewError(fiber.StatusTooManyRequests, "too many searches, try again later")
		case weather.ReasonNetwork, weather.ReasonProvider, weather.ReasonClient:
			return fiber.NewError(fiber.StatusBadGateway, "place search is unavailable")
		}
		log.Printf("ERROR: searching places for %q: %v", q.Q, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to search places")
	}
	return c.JSON(fiber.Map{"places": found})
}

func (h *handler) listPlaces(c *fiber.Ctx) error {
	saved, err := h.places.List(c.UserContext())
	if err != nil {
		log.Printf("ERROR: listing places: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list places")
	}
	if saved == nil {
		saved = []weather.Place{}
	}
	return c.JSON(fiber.Map{
		"default": h.places.Default(),
		"places":  saved,
	})
}

// placeRequest is the body of POST /places.
type placeRequest struct {
	ID        string  `json:"id" validate:"required,max=128"`
	Name      string  `json:"name" validate:"required,max=256"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	TimeZone  string  `json:"timeZone" validate:"omitempty,timezone"`
}

func (h *handler) savePlace(c *fiber.Ctx) error {
	var req placeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	place := weather.Place(req)
	if err := h.places.Save(c.UserContext(), place); err != nil {
		if errors.Is(err, places.ErrInvalidPlace) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		log.Printf("ERROR: saving place %s: %v", place.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save place")
	}
	h.forget(place.ID)
	return c.Status(fiber.StatusCreated).JSON(place)
}

func (h *handler) deletePlace(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.places.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, weather.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "place is not saved")
		}
		log.Printf("ERROR: deleting place %s: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete place")
	}
	h.forget(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// forget drops rendered forecasts of a place whose details changed.
func (h *handler) forget(placeID string) {
	h.rendered.DeleteFunc(func(sel weather.Selection) bool { return sel.PlaceID == placeID })
}

func (h *handler) listUnits(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"temperature":   unitViews(units.AllTemperatureUnits()),
		"wind":          unitViews(units.AllSpeedUnits()),
		"precipitation": unitViews(units.AllLengthUnits()),
		"pressure":      unitViews(units.AllPressureUnits()),
		"defaults": fiber.Map{
			"metric":   units.Metric(),
			"imperial": units.Imperial(),
		},
	})
}
