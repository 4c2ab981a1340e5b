package handler

import (
	"bytes"
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/itinerary"
	"github.com/dangerclosesec/fieldwork/internal/service"
)

// TripHandler serves trips with their legs, lodging and itinerary.
type TripHandler struct {
	trips *service.TripService
}

func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.ListTrips(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, trips)
}

func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTripInput
	if !decodeJSON(w, r, &input) {
		return
	}
	trip, err := h.trips.CreateTrip(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	trip, err := h.trips.GetTrip(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateTripInput
	if !decodeJSON(w, r, &input) {
		return
	}
	trip, err := h.trips.UpdateTrip(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.trips.DeleteTrip(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItinerary returns the day-by-day plan as JSON, or as plain text when
// called with ?format=text.
func (h *TripHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	it, err := h.trips.GetItinerary(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "text" {
		respondWithJSON(w, http.StatusOK, it)
		return
	}

	var buf bytes.Buffer
	if err := itinerary.Render(&buf, it.Trip, it.Days); err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *TripHandler) ListTripLegs(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	legs, err := h.trips.ListTripLegs(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, legs)
}

func (h *TripHandler) CreateTripLeg(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.CreateTripLegInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.TripID = id

	leg, err := h.trips.CreateTripLeg(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, leg)
}

func (h *TripHandler) ReorderTripLegs(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.ReorderTripLegsInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if err := h.trips.ReorderTripLegs(r.Context(), id, input); err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *TripHandler) UpdateTripLeg(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateTripLegInput
	if !decodeJSON(w, r, &input) {
		return
	}
	leg, err := h.trips.UpdateTripLeg(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, leg)
}

func (h *TripHandler) DeleteTripLeg(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.trips.DeleteTripLeg(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) ListLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	lodging, err := h.trips.ListLodging(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lodging)
}

func (h *TripHandler) CreateLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.CreateLodgingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.TripID = id

	lodging, err := h.trips.CreateLodging(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, lodging)
}

func (h *TripHandler) UpdateLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateLodgingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lodging, err := h.trips.UpdateLodging(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lodging)
}

func (h *TripHandler) DeleteLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.trips.DeleteLodging(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
