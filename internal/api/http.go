package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/match"
)

// HTTPHandler wraps Handle as the `POST /move` endpoint of spec.md §6.1.
// Programming-bug panics are recovered here (spec.md §7: "Panics from
// programming bugs are the exception; the worker may crash on them" —
// this repo instead recovers and logs, since cmd/gomokud runs as a single
// long-lived worker rather than under a respawn supervisor in this
// codebase; see DESIGN.md).
func HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverPanic(w)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(ErrMalformedRequest, err.Error()))
			return
		}

		resp, err := Handle(r.Context(), &req)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			klog.Errorf("api: failed writing response: %v", err)
		}
	}
}

func recoverPanic(w http.ResponseWriter) {
	if r := recover(); r != nil {
		klog.Errorf("api: recovered panic: %v", r)
		writeError(w, http.StatusInternalServerError, errors.Errorf("internal error"))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, ErrInconsistent),
		errors.Is(err, match.ErrIllegalMove),
		errors.Is(err, match.ErrNothingToUndo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
