package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	result core.Result
	err    error
	asked  []string
}

func (f *fakePipeline) Ask(ctx context.Context, question string) (core.Result, error) {
	f.asked = append(f.asked, question)
	if f.err != nil {
		return core.Result{}, f.err
	}
	return f.result, nil
}

func doRequest(t *testing.T, s *Server, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/qa", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleQA(rec, req)
	return rec
}

func TestHandleQA(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		pipeline   *fakePipeline
		wantStatus int
		wantAsked  int
	}{
		{
			name:       "success",
			method:     http.MethodPost,
			body:       `{"question": "who is the provost?"}`,
			pipeline:   &fakePipeline{result: core.Result{Answer: "James Glaser.", Source: "Live Search on https://x/a"}},
			wantStatus: http.StatusOK,
			wantAsked:  1,
		},
		{
			name:       "missing question key",
			method:     http.MethodPost,
			body:       `{}`,
			pipeline:   &fakePipeline{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			method:     http.MethodPost,
			body:       `{"question"`,
			pipeline:   &fakePipeline{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank question rejected by pipeline",
			method:     http.MethodPost,
			body:       `{"question": "  "}`,
			pipeline:   &fakePipeline{err: core.ErrMissingQuestion},
			wantStatus: http.StatusBadRequest,
			wantAsked:  1,
		},
		{
			name:       "oracle failure degrades",
			method:     http.MethodPost,
			body:       `{"question": "q"}`,
			pipeline:   &fakePipeline{err: core.ErrOracleTimeout},
			wantStatus: http.StatusBadGateway,
			wantAsked:  1,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			body:       "",
			pipeline:   &fakePipeline{},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(":0")
			s.SetPipeline(tt.pipeline)

			rec := doRequest(t, s, tt.method, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Len(t, tt.pipeline.asked, tt.wantAsked)
		})
	}
}

func TestHandleQASuccessBody(t *testing.T) {
	s := NewServer(":0")
	s.SetPipeline(&fakePipeline{result: core.Result{Answer: "James Glaser.", Source: "Live Search on https://x/a"}})

	rec := doRequest(t, s, http.MethodPost, `{"question": "who is the provost?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "James Glaser.", body["answer"])
	assert.Equal(t, "Live Search on https://x/a", body["source"])
}

func TestHandleQABeforeInitialization(t *testing.T) {
	s := NewServer(":0")

	rec := doRequest(t, s, http.MethodPost, `{"question": "q"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleQADegradedBodyHidesError(t *testing.T) {
	s := NewServer(":0")
	s.SetPipeline(&fakePipeline{err: core.ErrOracle})

	rec := doRequest(t, s, http.MethodPost, `{"question": "q"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), core.ErrOracle.Error())
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(":0")
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
