package info

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	rr := httptest.NewRecorder()
	New("1.2.0").Info(rr, httptest.NewRequest(http.MethodGet, "/info", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var meta Meta
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meta))
	assert.Equal(t, Meta{Title: Title, Description: Description, Version: "1.2.0", Docs: DocsPath}, meta)
}

func TestRoot(t *testing.T) {
	rr := httptest.NewRecorder()
	New("1.2.0").Root(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var w Welcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &w))
	assert.NotEmpty(t, w.Message)
	assert.Contains(t, w.Endpoints, "/register")
}
