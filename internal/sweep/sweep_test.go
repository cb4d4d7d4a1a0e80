package sweep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/probe"
)

func TestRun_MixedOutcomes(t *testing.T) {
	chk := probe.NewHTTPChecker(2 * time.Second)
	httpmock.ActivateNonDefault(chk.Client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://a.test",
		httpmock.NewStringResponder(200, "ok"))
	httpmock.RegisterResponder(http.MethodGet, "https://b.test",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	e := NewExecutor(zap.NewNop(), chk, 2*time.Second)
	results := e.Run(context.Background(), []string{"https://a.test", "https://b.test"})
	require.Len(t, results, 2)

	// order is completion order; compare as a set
	byURL := make(map[string]struct {
		up     bool
		status int
	})
	for _, r := range results {
		byURL[r.URL] = struct {
			up     bool
			status int
		}{r.Up, r.StatusCode}
	}
	require.Equal(t, true, byURL["https://a.test"].up)
	require.Equal(t, 200, byURL["https://a.test"].status)
	require.Equal(t, false, byURL["https://b.test"].up)
	require.Equal(t, 0, byURL["https://b.test"].status)
}

func TestRun_EmptySnapshot(t *testing.T) {
	e := NewExecutor(zap.NewNop(), probe.NewHTTPChecker(time.Second), time.Second)
	require.Empty(t, e.Run(context.Background(), nil))
}

func TestRun_NoHeadOfLineBlocking(t *testing.T) {
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer fast.Close()
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(200)
	}))
	defer slow.Close()

	timeout := 300 * time.Millisecond
	e := NewExecutor(zap.NewNop(), probe.NewHTTPChecker(timeout), timeout)

	start := time.Now()
	results := e.Run(context.Background(), []string{fast.URL, slow.URL, fast.URL + "/x"})
	elapsed := time.Since(start)

	require.Len(t, results, 3)
	// the hanging target must cost one timeout at most, not serialize the rest
	require.Less(t, elapsed, time.Second, "sweep took %v", elapsed)

	var downs int
	for _, r := range results {
		if !r.Up {
			downs++
			require.Equal(t, slow.URL, r.URL)
		}
	}
	require.Equal(t, 1, downs)
}
