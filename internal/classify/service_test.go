package classify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wave-app/wave/internal/mode"
	"github.com/wave-app/wave/internal/theme"
)

func TestServiceUsesRemoteWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze", r.URL.Path)
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggested_mode":"energetic","confidence":0.92,"analysis":"High drive detected."}`))
	}))
	defer srv.Close()

	svc := NewService(NewRemote(srv.URL, "sekrit"))
	res, err := svc.Analyze(context.Background(), "whatever")
	require.NoError(t, err)
	require.NotNil(t, res.SuggestedMode)
	assert.Equal(t, mode.Energetic, *res.SuggestedMode)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.Equal(t, "High drive detected.", res.Rationale)
}

func TestServiceFallsBackOnRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewService(NewRemote(srv.URL, ""))
	res, err := svc.Analyze(context.Background(), "I feel calm today")
	require.NoError(t, err)
	require.NotNil(t, res.SuggestedMode)
	assert.Equal(t, mode.Reflective, *res.SuggestedMode)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
}

func TestServiceFallsBackWhenUnreachable(t *testing.T) {
	svc := NewService(NewRemote("http://127.0.0.1:1", ""))
	res, err := svc.Analyze(context.Background(), "Time to focus and achieve")
	require.NoError(t, err)
	require.NotNil(t, res.SuggestedMode)
	assert.Equal(t, mode.Energetic, *res.SuggestedMode)
}

func TestServiceOfflineByDefault(t *testing.T) {
	svc := NewService(nil)
	res, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, res.SuggestedMode)
	assert.Equal(t, 0.5, res.Confidence)
}

func TestRemoteRejectsUnknownMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggested_mode":"zen","confidence":0.8,"analysis":"?"}`))
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL, "").Analyze(context.Background(), "text")
	assert.Error(t, err)
}

// A suggestion that matches the current mode causes no toggle: the
// caller inspects the result before touching the controller.
func TestSuggestionMatchingCurrentModeCausesNoToggle(t *testing.T) {
	ctrl := theme.NewController(nil, nil)
	svc := NewService(nil)

	res, err := svc.Analyze(context.Background(), "I want to relax and reflect")
	require.NoError(t, err)
	require.NotNil(t, res.SuggestedMode)
	assert.Equal(t, mode.Reflective, *res.SuggestedMode)
	assert.GreaterOrEqual(t, res.Confidence, 0.6)

	if *res.SuggestedMode != ctrl.Current() {
		ctrl.Toggle()
	}

	assert.Equal(t, mode.Reflective, ctrl.Current())
	assert.False(t, ctrl.Transitioning())
}
