package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"room_ledger/internal/app"
	"room_ledger/internal/domain"
)

type Handlers struct {
	F *app.BookingFacade
	// Limiter throttles the write routes; nil disables throttling.
	Limiter *rate.Limiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	limited := s.mux.With(RateLimit(h.Limiter))

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/rooms/{number}", h.getRoom)
	limited.Post("/v1/rooms", h.addRooms)

	s.mux.Get("/v1/customers", h.listCustomers)
	s.mux.Get("/v1/customers/{email}", h.getCustomer)
	s.mux.Get("/v1/customers/{email}/reservations", h.customerReservations)
	limited.Post("/v1/customers", h.createCustomer)

	s.mux.Get("/v1/availability", h.availability)

	s.mux.Get("/v1/reservations", h.listReservations)
	limited.Post("/v1/reservations", h.bookRoom)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain failures to problem responses; anything unknown is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRoom),
		errors.Is(err, domain.ErrInvalidDateRange):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrDuplicateCustomer),
		errors.Is(err, domain.ErrDuplicateRoom),
		errors.Is(err, domain.ErrAlreadyReserved):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers GETs with a weak ETag and honours If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, mapRooms(h.F.GetAllRooms(r.Context())))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.F.GetRoom(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, mapRoom(room))
}

// addRooms takes a JSON array so an admin can enter several rooms in one go.
func (h *Handlers) addRooms(w http.ResponseWriter, r *http.Request) {
	var in []roomRequest
	if !decode(w, r, &in) {
		return
	}
	if len(in) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "provide at least one room")
		return
	}
	rooms := make([]domain.Room, 0, len(in))
	for _, rr := range in {
		room, err := rr.toDomain()
		if err != nil {
			writeError(w, err)
			return
		}
		rooms = append(rooms, room)
	}
	if err := h.F.AddRooms(r.Context(), rooms); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapRooms(rooms))
}

func (h *Handlers) listCustomers(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, mapCustomers(h.F.GetAllCustomers(r.Context())))
}

func (h *Handlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	c, ok := h.F.GetCustomer(r.Context(), email)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "customer not found")
		return
	}
	writeCached(w, r, mapCustomer(c))
}

func (h *Handlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in customerRequest
	if !decode(w, r, &in) {
		return
	}
	c, err := h.F.CreateCustomer(r.Context(), strings.TrimSpace(in.Email), in.FirstName, in.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCustomer(c))
}

func (h *Handlers) customerReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.F.GetReservationsFor(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, mapReservations(rs))
}

// availability searches checkIn..checkOut (MM/DD/YYYY). exact=true skips the one-week fallback.
func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := domain.ParseDay(q.Get("checkIn"))
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := domain.ParseDay(q.Get("checkOut"))
	if err != nil {
		writeError(w, err)
		return
	}

	if q.Get("exact") == "true" {
		rooms, err := h.F.FreeRooms(r.Context(), in, out)
		if err != nil {
			writeError(w, err)
			return
		}
		writeCached(w, r, mapAvailability(domain.Availability{Rooms: rooms, CheckIn: in, CheckOut: out}))
		return
	}

	a, err := h.F.FindRooms(r.Context(), in, out)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, mapAvailability(a))
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, mapReservations(h.F.GetAllReservations(r.Context())))
}

func (h *Handlers) bookRoom(w http.ResponseWriter, r *http.Request) {
	var in reservationRequest
	if !decode(w, r, &in) {
		return
	}
	checkIn, err := domain.ParseDay(in.CheckIn)
	if err != nil {
		writeError(w, err)
		return
	}
	checkOut, err := domain.ParseDay(in.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.F.BookRoomByNumber(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Room), checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapReservation(res))
}
