package ariston

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// facadeServer serves the login exchange and a fixed two-gateway discovery
// list, counting how often the list is fetched.
func facadeServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	discoveries := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/remote/plants", func(w http.ResponseWriter, r *http.Request) {
		discoveries++
		json.NewEncoder(w).Encode([]map[string]any{
			{"gw": "gw-boiler", "name": "Home", "sys": 3},
			{"gw": "gw-heater", "name": "Attic", "sys": 4, "wheType": 1},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &discoveries
}

func TestAriston_Connect(t *testing.T) {
	t.Run("stores the client and clears stale discovery", func(t *testing.T) {
		server, _ := facadeServer(t)

		var a Ariston
		a.gateways = []Gateway{{ID: "stale"}}
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if a.Client() == nil {
			t.Fatal("Client() is nil after Connect")
		}
		if a.Client().Token() != "tok-1" {
			t.Errorf("Token() = %q, want %q", a.Client().Token(), "tok-1")
		}
		if a.Gateways() != nil {
			t.Errorf("Gateways() = %v, want nil after reconnect", a.Gateways())
		}
	})

	t.Run("bad credentials leave the facade unusable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		var a Ariston
		err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/"))
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
		if a.Client() != nil {
			t.Error("Client() should stay nil after a failed Connect")
		}
	})

	t.Run("empty username rejected before dialing", func(t *testing.T) {
		var a Ariston
		if err := a.Connect("", "secret"); !errors.Is(err, ErrEmptyUsername) {
			t.Errorf("error = %v, want ErrEmptyUsername", err)
		}
	})
}

func TestAriston_Discover(t *testing.T) {
	t.Run("requires Connect first", func(t *testing.T) {
		var a Ariston
		if _, err := a.Discover(); !errors.Is(err, ErrNotConnected) {
			t.Errorf("error = %v, want ErrNotConnected", err)
		}
	})

	t.Run("caches the gateway list", func(t *testing.T) {
		server, discoveries := facadeServer(t)

		var a Ariston
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		gateways, err := a.Discover()
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(gateways) != 2 {
			t.Fatalf("len(gateways) = %d, want 2", len(gateways))
		}
		if len(a.Gateways()) != 2 {
			t.Errorf("len(Gateways()) = %d, want 2", len(a.Gateways()))
		}

		// Discover always refreshes; only Hello reuses the cache.
		if _, err := a.Discover(); err != nil {
			t.Fatalf("second Discover: %v", err)
		}
		if *discoveries != 2 {
			t.Errorf("discovery calls = %d, want 2", *discoveries)
		}
	})
}

func TestAriston_Hello(t *testing.T) {
	t.Run("requires Connect first", func(t *testing.T) {
		var a Ariston
		if _, err := a.Hello("gw-boiler"); !errors.Is(err, ErrNotConnected) {
			t.Errorf("error = %v, want ErrNotConnected", err)
		}
	})

	t.Run("discovers once and resolves handles from the cache", func(t *testing.T) {
		server, discoveries := facadeServer(t)

		var a Ariston
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}

		device, err := a.Hello("gw-boiler")
		if err != nil {
			t.Fatalf("Hello: %v", err)
		}
		if _, ok := device.(*GalevoDevice); !ok {
			t.Errorf("device = %T, want *GalevoDevice", device)
		}

		heater, err := a.HelloContext(context.Background(), "gw-heater")
		if err != nil {
			t.Fatalf("HelloContext: %v", err)
		}
		if _, ok := heater.(*EvoDevice); !ok {
			t.Errorf("device = %T, want *EvoDevice", heater)
		}
		if *discoveries != 1 {
			t.Errorf("discovery calls = %d, want 1", *discoveries)
		}
	})

	t.Run("passes device options through", func(t *testing.T) {
		server, _ := facadeServer(t)

		var a Ariston
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		device, err := a.Hello("gw-boiler", Metric(false), Locale("it-IT"))
		if err != nil {
			t.Fatalf("Hello: %v", err)
		}
		boiler := device.(*GalevoDevice)
		if boiler.metric {
			t.Error("metric = true, want false")
		}
		if boiler.locale != "it-IT" {
			t.Errorf("locale = %q, want %q", boiler.locale, "it-IT")
		}
	})

	t.Run("unknown gateway id", func(t *testing.T) {
		server, _ := facadeServer(t)

		var a Ariston
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		_, err := a.Hello("gw-unknown")
		if !errors.Is(err, ErrGatewayNotFound) {
			t.Errorf("error = %v, want ErrGatewayNotFound", err)
		}
	})

	t.Run("discovery failure surfaces", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/accounts/login", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		})
		mux.HandleFunc("/remote/plants", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		var a Ariston
		if err := a.Connect("user@example.com", "secret", WithBaseURL(server.URL+"/")); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if _, err := a.Hello("gw-boiler"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestDiscover(t *testing.T) {
	t.Run("connects and lists in one call", func(t *testing.T) {
		server, _ := facadeServer(t)

		gateways, err := Discover("user@example.com", "secret", WithBaseURL(server.URL+"/"))
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(gateways) != 2 {
			t.Fatalf("len(gateways) = %d, want 2", len(gateways))
		}
		if gateways[0].ID != "gw-boiler" || gateways[1].ID != "gw-heater" {
			t.Errorf("gateways = %v", gateways)
		}
	})

	t.Run("login failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		if _, err := Discover("user@example.com", "secret", WithBaseURL(server.URL+"/")); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		if _, err := Discover("", "secret"); !errors.Is(err, ErrEmptyUsername) {
			t.Errorf("error = %v, want ErrEmptyUsername", err)
		}
	})
}

func TestHello(t *testing.T) {
	// The one-call form always dials the production endpoint, so only the
	// credential validation path is exercised here.
	if _, err := Hello("", "secret", "gw-boiler"); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("error = %v, want ErrEmptyUsername", err)
	}
	if _, err := Hello("user@example.com", "", "gw-boiler"); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("error = %v, want ErrEmptyPassword", err)
	}
}
