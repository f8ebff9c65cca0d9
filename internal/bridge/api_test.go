package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusRequest(b *Bridge, path, gateway string) (echo.Context, *httptest.ResponseRecorder) {
	e := b.newStatusAPI()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if gateway != "" {
		c.SetParamNames("gateway")
		c.SetParamValues(gateway)
	}
	return c, rec
}

func TestHandleHealthz(t *testing.T) {
	b := testBridge(t)
	c, rec := statusRequest(b, "/healthz", "")

	require.NoError(t, b.handleHealthz(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleDevices(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())
	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	c, rec := statusRequest(b, "/devices", "")
	require.NoError(t, b.handleDevices(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var summaries []DeviceSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "AB123", summaries[0].Gateway)
	assert.True(t, summaries[0].Online)
}

func TestHandleDevicesEmpty(t *testing.T) {
	b := testBridge(t)
	c, rec := statusRequest(b, "/devices", "")

	require.NoError(t, b.handleDevices(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleDeviceState(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())
	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	c, rec := statusRequest(b, "/devices/:gateway/state", "AB123")
	require.NoError(t, b.handleDeviceState(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var state StateDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "AB123", state.Gateway)
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 55.0, *state.TargetTemperature)
}

func TestHandleDeviceStateUnknownGateway(t *testing.T) {
	b := testBridge(t)
	c, _ := statusRequest(b, "/devices/:gateway/state", "NOPE")

	err := b.handleDeviceState(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestHandleDeviceEnergy(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())
	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	c, rec := statusRequest(b, "/devices/:gateway/energy", "AB123")
	require.NoError(t, b.handleDeviceEnergy(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var energy EnergyDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &energy))
	assert.Equal(t, 1.25, energy.Consumption["DhwElec"])
}

func TestHandleDeviceEnergyBeforeFirstRefresh(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())

	c, _ := statusRequest(b, "/devices/:gateway/energy", "AB123")
	err := b.handleDeviceEnergy(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
