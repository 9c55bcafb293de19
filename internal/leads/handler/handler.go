package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/internal/leads/form"
	"leadcapture_frontend/internal/leads/transport"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/httpkit"
	"leadcapture_frontend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgBusy             = "A submission is already in progress."

	fieldsTag = "max=20,dive,keys,min=1,max=40,endkeys,max=2000"
)

// Handler serves the site's lead forms. Each browser session owns one form
// instance per variant.
type Handler struct {
	registry *form.Registry
	val      *validator.Validator
}

// New creates a form handler over registry.
func New(registry *form.Registry, val *validator.Validator) *Handler {
	return &Handler{registry: registry, val: val}
}

// RegisterRoutes mounts the form routes on rg (the /api/forms group).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListForms)
	rg.GET("/:variant", h.GetForm)
	rg.POST("/:variant", h.SubmitForm)
	rg.PATCH("/:variant", h.EditForm)
	rg.POST("/:variant/close", h.CloseForm)
}

// ListForms returns the available form variants.
// GET /api/forms
func (h *Handler) ListForms(c *gin.Context) {
	httpkit.OK(c, gin.H{"variants": h.registry.Variants()})
}

// GetForm returns the current state of the session's form.
// GET /api/forms/:variant
func (h *Handler) GetForm(c *gin.Context) {
	f, ok := h.formFor(c)
	if !ok {
		return
	}
	httpkit.OK(c, toView(f.Snapshot()))
}

// SubmitForm runs the submission pipeline. The body is a JSON object or a
// url-encoded form of field values. Plot forms take the plot as ?plot=.
// POST /api/forms/:variant
func (h *Handler) SubmitForm(c *gin.Context) {
	f, ok := h.formFor(c)
	if !ok {
		return
	}

	fields, err := h.bindFields(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Var(map[string]string(fields), fieldsTag); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	// A visitor closing the tab must not abort a lead already on its way;
	// the client timeout still bounds the call.
	ctx := context.WithoutCancel(c.Request.Context())
	snap, err := f.Submit(ctx, fields)
	h.respond(c, snap, err)
}

// EditForm merges field edits. A form showing a result returns to idle.
// PATCH /api/forms/:variant
func (h *Handler) EditForm(c *gin.Context) {
	f, ok := h.formFor(c)
	if !ok {
		return
	}

	var req transport.EditFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	snap, err := f.Edit(domain.Fields(req.Fields))
	h.respond(c, snap, err)
}

// CloseForm is the modal close action.
// POST /api/forms/:variant/close
func (h *Handler) CloseForm(c *gin.Context) {
	f, ok := h.formFor(c)
	if !ok {
		return
	}
	httpkit.OK(c, toView(f.Close()))
}

// formFor resolves the session's form for the :variant route parameter and
// applies a ?plot= selection for plot forms.
func (h *Handler) formFor(c *gin.Context) (*form.Form, bool) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return nil, false
	}

	name := c.Param("variant")
	f, err := h.registry.Get(id.SessionID().String(), name)
	if httpkit.HandleError(c, err) {
		return nil, false
	}

	if plot := strings.TrimSpace(c.Query("plot")); plot != "" {
		if v, ok := h.registry.Variant(name); ok && v.RequirePlot {
			f.SelectPlot(plot)
		}
	}
	return f, true
}

func (h *Handler) bindFields(c *gin.Context) (domain.Fields, error) {
	if c.ContentType() == gin.MIMEJSON {
		var raw map[string]string
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, err
		}
		return domain.Fields(raw), nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(domain.Fields, len(c.Request.PostForm))
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields, nil
}

// respond writes the form view, using the error kind for the status code.
func (h *Handler) respond(c *gin.Context, snap form.Snapshot, err error) {
	view := toView(snap)
	if err == nil {
		httpkit.OK(c, view)
		return
	}

	if errors.Is(err, form.ErrBusy) {
		view.Message = msgBusy
		httpkit.JSON(c, http.StatusConflict, view)
		return
	}

	status := http.StatusInternalServerError
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
	}
	httpkit.JSON(c, status, view)
}

func toView(s form.Snapshot) transport.FormView {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return transport.FormView{
		Variant: s.Variant,
		State:   string(s.State),
		Message: s.Message,
		Fields:  fields,
		PlotID:  s.PlotID,
	}
}
