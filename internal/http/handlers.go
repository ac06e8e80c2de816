package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"daybook/internal/core"
	"daybook/internal/log"
)

type entryPayload struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
}

type entryResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
}

func toEntryResponse(e core.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Amount:      e.Amount.Format(),
		Kind:        string(e.Kind),
	}
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListEntries(w, r)
	case http.MethodPost:
		s.handleCreateEntry(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var p entryPayload

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
			return
		}
		p = entryPayload{
			Date:        r.Form.Get("date"),
			Description: r.Form.Get("description"),
			Amount:      r.Form.Get("amount"),
			Kind:        r.Form.Get("kind"),
		}
	}

	entry, err := s.ledger.AddEntry(r.Context(), p.Date, p.Description, p.Amount, p.Kind)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			// Recoverable: the caller fixes the input and resubmits.
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": verr.Reason})
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save entry",
			log.FieldError, err,
			log.FieldEntryDesc, p.Description,
			log.FieldOperation, log.OpAppend)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save entry"})
		return
	}

	slog.InfoContext(r.Context(), "Entry created",
		log.FieldEntryID, entry.ID,
		log.FieldEntryDate, entry.Date,
		log.FieldEntryDesc, entry.Description,
		log.FieldAmountCents, entry.Amount.Cents,
		log.FieldEntryKind, entry.Kind)

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.ledger.ListEntriesFiltered(r.Context(), q.Get("kind"), q.Get("from"), q.Get("to"))
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": verr.Reason})
			return
		}
		slog.ErrorContext(r.Context(), "Failed to list entries",
			log.FieldError, err,
			log.FieldOperation, log.OpList)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list entries"})
		return
	}

	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	totals, err := s.ledger.Totals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute totals", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute totals"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"income":   totals.Income.Format(),
		"expense":  totals.Expense.Format(),
		"currency": s.ledger.Settings().Currency,
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	breakdown, err := s.ledger.CategoryBreakdown(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute breakdown", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute breakdown"})
		return
	}

	type kindSum struct {
		Kind   string `json:"kind"`
		Amount string `json:"amount"`
	}
	out := make([]kindSum, len(breakdown))
	for i, ka := range breakdown {
		out[i] = kindSum{Kind: string(ka.Kind), Amount: ka.Amount.Format()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	slices, err := s.ledger.ChartData(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute chart data", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute chart data"})
		return
	}

	type slice struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
		Color string  `json:"color"`
	}
	out := make([]slice, len(slices))
	for i, cs := range slices {
		out[i] = slice{Label: cs.Label, Value: cs.Value, Color: cs.Color}
	}
	writeJSON(w, http.StatusOK, out)
}
