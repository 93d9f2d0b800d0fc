package ha

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newMockHA(t *testing.T, status int, stateBody string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	calls := &[]recordedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			assert.NoError(t, json.Unmarshal(b, &call.Body))
		}
		*calls = append(*calls, call)

		w.WriteHeader(status)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(stateBody))
		} else {
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestClient_GetState(t *testing.T) {
	body := `{
		"entity_id": "climate.office_trv",
		"state": "heat",
		"attributes": {"hvac_modes": ["off","heat"], "current_temperature": 19.5, "temperature": 21, "friendly_name": "Office TRV"},
		"last_changed": "2025-01-10T08:00:00+00:00",
		"last_updated": "2025-01-10T08:00:05+00:00"
	}`
	srv, calls := newMockHA(t, http.StatusOK, body)

	c, err := NewClient(srv.URL+"/", "secret", time.Second)
	require.NoError(t, err)

	st, err := c.GetState(context.Background(), "climate.office_trv")
	require.NoError(t, err)
	assert.Equal(t, "heat", st.State)
	assert.Equal(t, 19.5, st.Attributes.CurrentTemperature)
	require.NotNil(t, st.Attributes.Temperature)
	assert.Equal(t, 21.0, *st.Attributes.Temperature)

	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/states/climate.office_trv", (*calls)[0].Path)
	assert.Equal(t, "Bearer secret", (*calls)[0].Auth)
}

func TestClient_GetState_ErrorStatus(t *testing.T) {
	srv, _ := newMockHA(t, http.StatusNotFound, `{"message":"Entity not found."}`)
	c, err := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	_, err = c.GetState(context.Background(), "climate.missing")
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_GetState_BadJSON(t *testing.T) {
	srv, _ := newMockHA(t, http.StatusOK, `not json`)
	c, err := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	_, err = c.GetState(context.Background(), "climate.office_trv")
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Services(t *testing.T) {
	srv, calls := newMockHA(t, http.StatusOK, "")
	c, err := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	require.NoError(t, c.SetHVACMode(context.Background(), "climate.lounge_trv", HVACModeHeat))
	require.NoError(t, c.SetTemperature(context.Background(), "climate.lounge_trv", 20.5))

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPost, (*calls)[0].Method)
	assert.Equal(t, "/api/services/climate/set_hvac_mode", (*calls)[0].Path)
	assert.Equal(t, map[string]any{"entity_id": "climate.lounge_trv", "hvac_mode": "heat"}, (*calls)[0].Body)
	assert.Equal(t, "/api/services/climate/set_temperature", (*calls)[1].Path)
	assert.Equal(t, 20.5, (*calls)[1].Body["temperature"])
}

func TestClient_ServiceErrorStatus(t *testing.T) {
	srv, _ := newMockHA(t, http.StatusUnauthorized, "")
	c, err := NewClient(srv.URL, "wrong", time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, c.SetHVACMode(context.Background(), "climate.x", HVACModeOff), ErrStatus)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", "t", 0)
	assert.Error(t, err)
	_, err = NewClient("://bad", "t", 0)
	assert.Error(t, err)
}
