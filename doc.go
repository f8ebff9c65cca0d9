// Package ariston provides a Go client library for the Ariston NET remote
// thermo API.
//
// This library authenticates with Ariston NET account credentials, lists
// the account's gateways (boilers, water heaters and heat pumps reachable
// through their cloud gateway) and wraps each one in a typed device handle
// for reading state, changing setpoints and modes, and retrieving energy
// consumption.
//
// # Connecting
//
// Create a client with account credentials and log in:
//
//	client, err := ariston.NewClient("user@example.com", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//
// The session token is kept inside the client; when the service reports it
// expired, the next call logs in again and is replayed once.
//
// # Devices
//
// Discover the account's gateways and build a handle for one of them:
//
//	gateways, err := client.ListGateways()
//	device, err := ariston.NewDevice(client, gateways[0])
//	if err := device.UpdateState(); err != nil {
//	    log.Fatal(err)
//	}
//	if temp := device.WaterHeaterCurrentTemperature(); temp != nil {
//	    fmt.Printf("%s: %.1f%s\n", device.Name(), *temp, device.WaterHeaterTemperatureUnit())
//	}
//
// NewDevice picks the concrete type from the gateway's system type:
// *GalevoDevice for thermoregulation platforms, the velis water heater
// family (*EvoDevice, *LuxDevice, *Lux2Device, *LydosDevice,
// *LydosHybridDevice, *NuosSplitDevice) and *BsbDevice for BSB boilers.
// Assert to the concrete type for the family-specific surface:
//
//	if galevo, ok := device.(*ariston.GalevoDevice); ok {
//	    err = galevo.SetComfortTemp(21.5, 1)
//	}
//
// Handles cache the documents they fetch; reads never touch the network.
// Call UpdateState, UpdateEnergy or GetFeatures to refresh, then read.
//
// # One-call helpers
//
// The package-level helpers collapse the connect, discover, hello sequence:
//
//	device, err := ariston.Hello("user@example.com", "secret", "gateway-id")
//
// or keep an Ariston facade around to reuse its cached discovery list:
//
//	var a ariston.Ariston
//	err = a.Connect("user@example.com", "secret")
//	device, err := a.Hello("gateway-id")
//
// # Blocking and context forms
//
// Every network operation comes in two forms: Foo(...), which blocks with
// context.Background(), and FooContext(ctx, ...) for callers that manage
// deadlines and cancellation:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	err = device.UpdateStateContext(ctx)
//
// # Error Handling
//
// Check for specific error conditions:
//
//	if err := device.UpdateState(); err != nil {
//	    if ariston.IsAuthError(err) {
//	        // Credentials rejected or session unrecoverable
//	    } else if ariston.IsNotFound(err) {
//	        // Gateway unknown to the service
//	    } else if ariston.IsTimeout(err) {
//	        // Network timeout
//	    }
//	}
//
// Sentinel errors (ErrInvalidCredentials, ErrGatewayNotFound,
// ErrUnsupportedDevice, ...) work with errors.Is; service failures carry an
// *APIError with the HTTP status and endpoint.
//
// # Batch refresh
//
// Refresh many handles concurrently with a bounded worker pool:
//
//	results := ariston.UpdateStatesBatch(ctx, devices, nil)
//	for _, r := range results {
//	    if r.Error != nil {
//	        log.Printf("gateway %s: %v", r.Gateway, r.Error)
//	    }
//	}
package ariston
