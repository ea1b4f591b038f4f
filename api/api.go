package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/aleph-zero/flutterstack/service/identity"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"net/http"
)

/* *** Identity API *** */

type IdentityHandler struct {
	service identity.Service
}

func (h *IdentityHandler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(h.service.Identify())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func NewIdentityHandler(svc identity.Service) IdentityHandler {
	return IdentityHandler{service: svc}
}

/* *** Command API *** */

type CommandHandler struct {
	service command.Service
}

func NewCommandHandler(svc command.Service) CommandHandler {
	return CommandHandler{service: svc}
}

func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing command in query parameter q")))
		return
	}

	result, err := h.service.Execute(r.Context(), q)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.Render(w, r, &CommandResponse{result})
}

type CommandResponse struct {
	*command.CommandResult
}

func (c *CommandResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

/* *** Stack API *** */

type stackContextKey struct{}

// StackContext lifts the {stack} URL parameter into the request context.
func StackContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var stack string
		if stack = chi.URLParam(r, "stack"); stack == "" {
			render.Render(w, r, ErrInvalidRequest(errors.New("missing stack name")))
			return
		}
		ctx := context.WithValue(r.Context(), stackContextKey{}, stack)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func stackName(r *http.Request) string {
	stack, _ := r.Context().Value(stackContextKey{}).(string)
	return stack
}

type StackHandler struct {
	service stacks.Service
}

func NewStackHandler(svc stacks.Service) StackHandler {
	return StackHandler{service: svc}
}

func (h *StackHandler) List(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.Render(w, r, &StackListResponse{Stacks: h.service.List(r.Context())})
}

func (h *StackHandler) Create(w http.ResponseWriter, r *http.Request) {
	data := &CreateStackRequest{}
	if err := render.Bind(r, data); err != nil {
		renderBodyError(w, r, err)
		return
	}

	var d *stacks.Description
	var err error
	if data.Values != nil {
		d, err = h.service.CreateFrom(r.Context(), stackName(r), data.Values)
	} else {
		d, err = h.service.Create(r.Context(), stackName(r), *data.Capacity)
	}
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &StackResponse{d})
}

func (h *StackHandler) Describe(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Describe(r.Context(), stackName(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &StackResponse{d})
}

func (h *StackHandler) Drop(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Drop(r.Context(), stackName(r)); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *StackHandler) Push(w http.ResponseWriter, r *http.Request) {
	data := &PushRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	d, err := h.service.Push(r.Context(), stackName(r), *data.Value)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &StackResponse{d})
}

func (h *StackHandler) Pop(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Pop(r.Context(), stackName(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &ValueResponse{Stack: stackName(r), Value: v})
}

func (h *StackHandler) Top(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Top(r.Context(), stackName(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &ValueResponse{Stack: stackName(r), Value: v})
}

func (h *StackHandler) Clear(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Clear(r.Context(), stackName(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &StackResponse{d})
}

func (h *StackHandler) Fill(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	values, err := CollectValues(r.Body, h.service.MaxCapacity())
	if err != nil {
		renderBodyError(w, r, err)
		return
	}

	d, err := h.service.Fill(r.Context(), stackName(r), values)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &StackResponse{d})
}

func (h *StackHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var order stacks.Order
	switch o := r.URL.Query().Get("order"); o {
	case "", "forward", stacks.BottomUp.String():
		order = stacks.BottomUp
	case "reverse", stacks.TopDown.String():
		order = stacks.TopDown
	default:
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("unknown scan order '%s'", o)))
		return
	}

	values, err := h.service.Scan(r.Context(), stackName(r), order)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.Render(w, r, &ScanResponse{Stack: stackName(r), Order: order.String(), Values: values})
}

/* *** Requests and responses *** */

type CreateStackRequest struct {
	Capacity *int           `json:"capacity,omitempty"`
	Values   []engine.Value `json:"values"`
}

func (c *CreateStackRequest) Bind(r *http.Request) error {
	switch {
	case c.Capacity == nil && c.Values == nil:
		return errors.New("missing required capacity or values")
	case c.Capacity != nil && c.Values != nil:
		return errors.New("capacity and values are mutually exclusive")
	}
	for i, v := range c.Values {
		if !v.IsValid() {
			return fmt.Errorf("element %d is null", i)
		}
	}
	return nil
}

type PushRequest struct {
	Value *engine.Value `json:"value"`
}

func (p *PushRequest) Bind(r *http.Request) error {
	if p.Value == nil || !p.Value.IsValid() {
		return errors.New("missing required value")
	}
	return nil
}

type StackResponse struct {
	*stacks.Description
}

func (s *StackResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type StackListResponse struct {
	Stacks []*stacks.Description `json:"stacks"`
}

func (s *StackListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ValueResponse struct {
	Stack string       `json:"stack"`
	Value engine.Value `json:"value"`
}

func (v *ValueResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ScanResponse struct {
	Stack  string         `json:"stack"`
	Order  string         `json:"order"`
	Values []engine.Value `json:"values"`
}

func (s *ScanResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Routes mounts the stack endpoints on a fresh router.
func (h *StackHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Route("/{stack}", func(r chi.Router) {
		r.Use(middleware.RequestSize(MaxRequestBytes))
		r.Use(StackContext)
		r.Put("/", h.Create)
		r.Get("/", h.Describe)
		r.Delete("/", h.Drop)
		r.Post("/push", h.Push)
		r.Post("/pop", h.Pop)
		r.Get("/top", h.Top)
		r.Post("/clear", h.Clear)
		r.Put("/fill", h.Fill)
		r.Get("/scan", h.Scan)
	})
	return r
}
