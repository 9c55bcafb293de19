package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactInquiry() domain.LeadInquiry {
	return domain.LeadInquiry{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		Message:  "Interested",
		Source:   domain.SourceHome,
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	log := logger.NewWithWriter("production", &buf)
	return New(srv.URL+"/", log, opts...), &buf
}

func TestSubmitContactSuccess(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathContact, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"ok":true,"message":"<b>Saved</b>"}`)
	})

	res, err := c.Submit(context.Background(), contactInquiry())
	require.NoError(t, err)

	assert.Equal(t, PathContact, res.Endpoint)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Saved", res.Message)
	assert.Equal(t, "Ravi Kumar", got["firstName"])
	assert.Equal(t, "ravi@example.com", got["emailTxt"])
	assert.Equal(t, "home", got["source"])
}

func TestSubmitPlotInquiryEndpoint(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathPlotInquiries, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	in := contactInquiry()
	in.Source = domain.SourcePlot
	in.PlotID = "A-12"
	in.BudgetRange = domain.Budget75To100L
	in.InquiryType = domain.InquirySiteVisit

	res, err := c.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "A-12", got["plot_number"])
	assert.Equal(t, "75-100L", got["budget_range"])
	assert.Equal(t, "site_visit", got["inquiry_type"])
}

func TestSubmitTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.Submit(context.Background(), contactInquiry())
	require.Error(t, err)

	assert.True(t, apperr.Is(err, apperr.KindTimeout))
	assert.Equal(t, MsgTimeout, apperr.Message(err, ""))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmitHTTP500(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Submit(context.Background(), contactInquiry())
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindHTTP, appErr.Kind)
	assert.Equal(t, "HTTP 500", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestSubmitOKFalseUsesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":false,"message":"x"}`)
	})

	_, err := c.Submit(context.Background(), contactInquiry())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindHTTP))
	assert.Equal(t, "x", apperr.Message(err, ""))
}

func TestSubmitErrorFieldFallback(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"<script>alert(1)</script>Invalid phone"}`)
	})

	_, err := c.Submit(context.Background(), contactInquiry())
	require.Error(t, err)
	assert.Equal(t, "Invalid phone", apperr.Message(err, ""))
}

func TestSubmitNonJSONSuccessIsLogged(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>thanks</html>")
	})

	res, err := c.Submit(context.Background(), contactInquiry())
	require.NoError(t, err)
	assert.Empty(t, res.Message)
	assert.Contains(t, logs.String(), "non-JSON success body")
}

func TestSubmitNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base, logger.Discard())
	_, err := c.Submit(context.Background(), contactInquiry())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
	assert.Equal(t, MsgNetwork, apperr.Message(err, ""))
}

func TestSubmitRejectsMissingSource(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	in := contactInquiry()
	in.Source = ""
	_, err := c.Submit(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Zero(t, calls.Load())
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathHealth {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	assert.NoError(t, c.Ping(context.Background()))

	down, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := down.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindHTTP))
}

func TestDownloadBrochure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/docs/NorthernLights.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, "%PDF-1.7 brochure")
	}))
	t.Cleanup(srv.Close)

	c := New("https://api.invalid", logger.Discard())

	var out strings.Builder
	n, err := c.DownloadBrochure(context.Background(), JoinURL(srv.URL, "/docs/NorthernLights.pdf"), &out)
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.7 brochure")), n)
	assert.Equal(t, "%PDF-1.7 brochure", out.String())

	_, err = c.DownloadBrochure(context.Background(), JoinURL(srv.URL, "/docs/missing.pdf"), &out)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindHTTP))
}
