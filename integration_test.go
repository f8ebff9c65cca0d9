//go:build integration

package ariston

import (
	"context"
	"os"
	"testing"
	"time"
)

// Integration tests require a live Ariston NET account.
// Run with: go test -tags=integration -v
//
// Environment variables:
//   ARISTON_USERNAME - account username (required)
//   ARISTON_PASSWORD - account password (required)
//   ARISTON_GATEWAY  - gateway id for per-appliance tests (optional)

func integrationCredentials(t *testing.T) (string, string) {
	user := os.Getenv("ARISTON_USERNAME")
	pass := os.Getenv("ARISTON_PASSWORD")
	if user == "" || pass == "" {
		t.Skip("ARISTON_USERNAME/ARISTON_PASSWORD not set, skipping integration test")
	}
	return user, pass
}

func integrationClient(t *testing.T, ctx context.Context) *Client {
	t.Helper()
	user, pass := integrationCredentials(t)
	client, err := NewClient(user, pass)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.ConnectContext(ctx); err != nil {
		t.Fatalf("ConnectContext: %v", err)
	}
	return client
}

func TestIntegration_ListGateways(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := integrationClient(t, ctx)

	gateways, err := client.ListGatewaysContext(ctx)
	if err != nil {
		t.Fatalf("ListGatewaysContext: %v", err)
	}

	t.Logf("Found %d gateways", len(gateways))
	for _, gw := range gateways {
		t.Logf("  - %s (%s): %s", gw.Name, gw.ID, gw.SystemType.String())
	}
}

func TestIntegration_Discover(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, pass := integrationCredentials(t)
	gateways, err := DiscoverContext(ctx, user, pass)
	if err != nil {
		t.Fatalf("DiscoverContext: %v", err)
	}

	t.Logf("Discovered %d gateways", len(gateways))
}

func TestIntegration_DeviceState(t *testing.T) {
	gateway := os.Getenv("ARISTON_GATEWAY")
	if gateway == "" {
		t.Skip("ARISTON_GATEWAY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	user, pass := integrationCredentials(t)
	dev, err := HelloContext(ctx, user, pass, gateway)
	if err != nil {
		t.Fatalf("HelloContext: %v", err)
	}

	if err := dev.UpdateStateContext(ctx); err != nil {
		t.Fatalf("UpdateStateContext: %v", err)
	}

	t.Logf("Device %s (%s)", dev.Name(), dev.Gateway())
	if v := dev.WaterHeaterCurrentTemperature(); v != nil {
		t.Logf("  current temperature: %.1f %s", *v, dev.WaterHeaterTemperatureUnit())
	}
	if v := dev.WaterHeaterTargetTemperature(); v != nil {
		t.Logf("  target temperature: %.1f %s", *v, dev.WaterHeaterTemperatureUnit())
	}
	t.Logf("  mode: %s", dev.WaterHeaterCurrentModeText())
}

func TestIntegration_Energy(t *testing.T) {
	gateway := os.Getenv("ARISTON_GATEWAY")
	if gateway == "" {
		t.Skip("ARISTON_GATEWAY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	user, pass := integrationCredentials(t)
	dev, err := HelloContext(ctx, user, pass, gateway)
	if err != nil {
		t.Fatalf("HelloContext: %v", err)
	}

	if _, err := dev.GetFeaturesContext(ctx); err != nil {
		t.Fatalf("GetFeaturesContext: %v", err)
	}
	if !dev.HasMetering() {
		t.Skip("gateway reports no energy metering")
	}

	if err := dev.UpdateEnergyContext(ctx); err != nil {
		t.Fatalf("UpdateEnergyContext: %v", err)
	}

	kinds := []ConsumptionType{
		ConsumptionTypeChTotal,
		ConsumptionTypeDhwTotal,
		ConsumptionTypeChGas,
		ConsumptionTypeDhwHeatingPumpElec,
		ConsumptionTypeDhwResistorElec,
		ConsumptionTypeDhwGas,
		ConsumptionTypeChElec,
		ConsumptionTypeDhwElec,
	}
	for _, kind := range kinds {
		if v := dev.ConsumptionLastValue(kind, ConsumptionTimeIntervalLastDay); v != nil {
			t.Logf("  %s: %g", kind.String(), *v)
		}
	}
}

func TestIntegration_BusErrors(t *testing.T) {
	gateway := os.Getenv("ARISTON_GATEWAY")
	if gateway == "" {
		t.Skip("ARISTON_GATEWAY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, pass := integrationCredentials(t)
	dev, err := HelloContext(ctx, user, pass, gateway)
	if err != nil {
		t.Fatalf("HelloContext: %v", err)
	}

	busErrors, err := dev.GetBusErrorsContext(ctx)
	if err != nil {
		t.Fatalf("GetBusErrorsContext: %v", err)
	}

	t.Logf("Found %d bus errors", len(busErrors))
	for _, be := range busErrors {
		t.Logf("  - %s at %s (blocking=%t)", be.Code, be.Timestamp, be.Blocking)
	}
}
