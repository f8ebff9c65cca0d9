package ariston

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetConsumptionsSequences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote/reports/gw1/consSequencesApi8" {
			t.Errorf("path = %q", r.URL.Path)
		}
		// The selector's encoded comma must survive into the raw query.
		if r.URL.RawQuery != "usages=Ch%2CDhw" {
			t.Errorf("query = %q, want usages=Ch%%2CDhw", r.URL.RawQuery)
		}
		w.Write([]byte(`[
			{"k": 1, "p": 1, "v": [0.5, 0.7]},
			{"k": 2, "p": 4, "v": [null, 3.2]}
		]`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	seqs, err := client.GetConsumptionsSequences("gw1", UsagesChDhw)
	if err != nil {
		t.Fatalf("GetConsumptionsSequences: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2", len(seqs))
	}
	if seqs[0].Kind != ConsumptionTypeChTotal || seqs[0].Period != ConsumptionTimeIntervalLastDay {
		t.Errorf("seqs[0] = %+v", seqs[0])
	}
	if seqs[1].Values[0] != nil {
		t.Errorf("null sample decoded as %v", *seqs[1].Values[0])
	}
}

func TestGetConsumptionsSequences_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	seqs, err := client.GetConsumptionsSequences("gw1", UsagesDhw)
	if err != nil {
		t.Fatalf("GetConsumptionsSequences: %v", err)
	}
	if seqs != nil {
		t.Errorf("sequences = %v, want nil", seqs)
	}
}

func TestGetEnergyAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote/reports/gw1/energyAccount" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"LastMonth": [{"gas": 153.2}, {"gas": 22.1, "elect": 3.4}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	account, err := client.GetEnergyAccount("gw1")
	if err != nil {
		t.Fatalf("GetEnergyAccount: %v", err)
	}
	if len(account.LastMonth) != 2 {
		t.Fatalf("LastMonth buckets = %d, want 2", len(account.LastMonth))
	}
	if account.LastMonth[0].Gas == nil || *account.LastMonth[0].Gas != 153.2 {
		t.Errorf("heating bucket = %+v", account.LastMonth[0])
	}
	if account.LastMonth[1].Elect == nil || *account.LastMonth[1].Elect != 3.4 {
		t.Errorf("dhw bucket = %+v", account.LastMonth[1])
	}
}

func TestConsumptionsSettingsRoundTrip(t *testing.T) {
	t.Run("get posts an empty body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/remote/plants/gw1/getConsumptionsSettings" {
				t.Errorf("path = %q", r.URL.Path)
			}
			if r.Method != http.MethodPost {
				t.Errorf("method = %q, want POST", r.Method)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if len(body) != 0 {
				t.Errorf("body = %v, want empty object", body)
			}
			w.Write([]byte(`{"currency": 3, "gasType": 1, "gasEnergyUnit": 2, "elecCost": 0.25, "gasCost": 1.1}`))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		settings, err := client.GetConsumptionsSettings("gw1")
		if err != nil {
			t.Fatalf("GetConsumptionsSettings: %v", err)
		}
		if settings.ElecCost == nil || *settings.ElecCost != 0.25 {
			t.Errorf("ElecCost = %v", settings.ElecCost)
		}
		if settings.GasCost == nil || *settings.GasCost != 1.1 {
			t.Errorf("GasCost = %v", settings.GasCost)
		}
	})

	t.Run("set posts the document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/remote/plants/gw1/consumptionsSettings" {
				t.Errorf("path = %q", r.URL.Path)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if body["elecCost"] != 0.30 {
				t.Errorf("elecCost = %v", body["elecCost"])
			}
			// Unset fields stay out of the payload entirely.
			if _, ok := body["gasCost"]; ok {
				t.Error("gasCost present in payload")
			}
		}))
		defer server.Close()

		client := newTestClient(t, server)
		cost := 0.30
		err := client.SetConsumptionsSettings("gw1", ConsumptionsSettings{ElecCost: &cost})
		if err != nil {
			t.Fatalf("SetConsumptionsSettings: %v", err)
		}
	})
}

func TestGetBusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/busErrors" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("gatewayId") != "gw1" {
			t.Errorf("gatewayId = %q", q.Get("gatewayId"))
		}
		if q.Get("blockingOnly") != "False" {
			t.Errorf("blockingOnly = %q", q.Get("blockingOnly"))
		}
		w.Write([]byte(`[{"gw": "gw1", "fault": 501, "mult": 2, "code": "5P1", "blk": true}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	errs, err := client.GetBusErrors("gw1")
	if err != nil {
		t.Fatalf("GetBusErrors: %v", err)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Fault != 501 || errs[0].Code != "5P1" || !errs[0].Blocking {
		t.Errorf("bus error = %+v", errs[0])
	}
}
