package api

import (
	"errors"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/aleph-zero/flutterstack/service/stacks"
	log "github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"net/http"
)

type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, status int) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorText:      err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return newErrResponse(err, http.StatusBadRequest)
}

func ErrNotFound(err error) render.Renderer {
	return newErrResponse(err, http.StatusNotFound)
}

func ErrConflict(err error) render.Renderer {
	return newErrResponse(err, http.StatusConflict)
}

func ErrRequestTooLarge(err error) render.Renderer {
	return newErrResponse(err, http.StatusRequestEntityTooLarge)
}

func ErrInternalServerError(err error) render.Renderer {
	return newErrResponse(err, http.StatusInternalServerError)
}

// MaxRequestBytes caps the body of every request addressed to a stack.
const MaxRequestBytes int64 = 8 << 20

// renderBodyError reports a request body that could not be decoded.
func renderBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	var engineErr engine.Error

	switch {
	case errors.As(err, &tooLarge):
		render.Render(w, r, ErrRequestTooLarge(err))
	case errors.As(err, &engineErr):
		render.Render(w, r, ErrConflict(err))
	default:
		render.Render(w, r, ErrInvalidRequest(err))
	}
}

// renderError maps service and engine failures onto HTTP statuses.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid command.InvalidCommandError
	var engineErr engine.Error

	switch {
	case errors.As(err, &invalid),
		errors.Is(err, stacks.Error{ErrorCode: stacks.InvalidName}),
		errors.Is(err, stacks.Error{ErrorCode: stacks.InvalidCapacity}):
		render.Render(w, r, ErrInvalidRequest(err))
	case errors.Is(err, stacks.Error{ErrorCode: stacks.NoSuchStack}):
		render.Render(w, r, ErrNotFound(err))
	case errors.Is(err, stacks.Error{ErrorCode: stacks.StackExists}),
		errors.As(err, &engineErr):
		render.Render(w, r, ErrConflict(err))
	default:
		log.LogEntry(r.Context()).Error("Error handling request", "path", r.URL.Path, "error", err)
		render.Render(w, r, ErrInternalServerError(err))
	}
}
