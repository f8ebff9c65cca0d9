package bridge

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newStatusAPI builds the HTTP handler serving the bridge's cached
// documents. It reads the same snapshots the MQTT topics carry, so a
// consumer without a broker subscription can still inspect the bridge.
func (b *Bridge) newStatusAPI() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/healthz", b.handleHealthz)
	e.GET("/devices", b.handleDevices)
	e.GET("/devices/:gateway/state", b.handleDeviceState)
	e.GET("/devices/:gateway/energy", b.handleDeviceEnergy)

	return e
}

func (b *Bridge) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Bridge) handleDevices(c echo.Context) error {
	return c.JSON(http.StatusOK, b.deviceSummaries())
}

func (b *Bridge) handleDeviceState(c echo.Context) error {
	gateway := c.Param("gateway")
	state, ok := b.stateFor(gateway)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown gateway "+gateway)
	}
	return c.JSON(http.StatusOK, state)
}

func (b *Bridge) handleDeviceEnergy(c echo.Context) error {
	gateway := c.Param("gateway")
	energy, ok := b.energyFor(gateway)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no energy data for gateway "+gateway)
	}
	return c.JSON(http.StatusOK, energy)
}
