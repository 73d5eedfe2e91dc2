package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(":0", zerolog.Nop())
}

func doJSON(t *testing.T, s *Server, method, url string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	w := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(w, req)

	out := make(map[string]interface{})
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestCreateEpisode(t *testing.T) {
	s := newTestServer()
	w, state := doJSON(t, s, http.MethodPost, "/episodes", map[string]interface{}{"seed": 5})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, state["id"])
	require.Equal(t, "bidding", state["phase"])
	require.Equal(t, false, state["done"])
	require.NotEmpty(t, state["legal_actions"])
}

func TestCreateEpisodeUnknownVariant(t *testing.T) {
	s := newTestServer()
	w, _ := doJSON(t, s, http.MethodPost, "/episodes", map[string]interface{}{"variant": "triplicate"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownEpisode(t *testing.T) {
	s := newTestServer()
	w, _ := doJSON(t, s, http.MethodGet, "/episodes/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStepToPassedOut(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", map[string]interface{}{"seed": 5})
	id := state["id"].(string)

	var last map[string]interface{}
	for i := 0; i < 4; i++ {
		w, out := doJSON(t, s, http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), map[string]interface{}{"action": 87})
		require.Equal(t, http.StatusOK, w.Code)
		last = out
	}
	require.Equal(t, true, last["done"])

	// a fifth step is rejected
	w, _ := doJSON(t, s, http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), map[string]interface{}{"action": 87})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestStepIllegalActionConflict(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", nil)
	id := state["id"].(string)

	// a card play during bidding
	w, _ := doJSON(t, s, http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), map[string]interface{}{"action": 0})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestObservationEndpoint(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", nil)
	id := state["id"].(string)

	w, out := doJSON(t, s, http.MethodGet, fmt.Sprintf("/episodes/%s/observation/N", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	obs := out["observation"].([]interface{})
	require.NotEmpty(t, obs)

	w, _ = doJSON(t, s, http.MethodGet, fmt.Sprintf("/episodes/%s/observation/X", id), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimultaneousEpisodeOverHTTP(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", map[string]interface{}{"variant": "simultaneous", "seed": 5})
	id := state["id"].(string)
	active := int(state["active_seat"].(float64))

	actions := map[string]int{"0": -1, "1": -1, "2": -1, "3": -1}
	actions[fmt.Sprintf("%d", active)] = 87

	w, _ := doJSON(t, s, http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), map[string]interface{}{"actions": actions})
	require.Equal(t, http.StatusOK, w.Code)

	// a passive real action is a protocol violation
	bad := map[string]int{"0": 87, "1": 87, "2": -1, "3": -1}
	w, _ = doJSON(t, s, http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), map[string]interface{}{"actions": bad})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestConcurrentStepsSerialized(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", map[string]interface{}{"seed": 5})
	id := state["id"].(string)

	// eight clients hammer the same episode with passes; the per-episode
	// lock must serialize them so exactly four advance the auction and the
	// rest are rejected against the completed hand
	const clients = 8
	codes := make(chan int, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			json.NewEncoder(&buf).Encode(map[string]interface{}{"action": 87})
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/episodes/%s/step", id), &buf)
			w := httptest.NewRecorder()
			s.server.Handler.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	ok, conflict := 0, 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	require.Equal(t, 4, ok)
	require.Equal(t, clients-4, conflict)

	_, final := doJSON(t, s, http.MethodGet, "/episodes/"+id, nil)
	require.Equal(t, true, final["done"])
	require.Equal(t, "complete", final["phase"])
}

func TestDeleteEpisode(t *testing.T) {
	s := newTestServer()
	_, state := doJSON(t, s, http.MethodPost, "/episodes", nil)
	id := state["id"].(string)

	w, _ := doJSON(t, s, http.MethodDelete, "/episodes/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, s, http.MethodGet, "/episodes/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, s, http.MethodDelete, "/episodes/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
