// Command aristonctl inspects and controls Ariston NET appliances from the
// terminal.
//
// Usage:
//
//	aristonctl [flags] <command> [args]
//
// Commands:
//
//	discover                   List the account's gateways
//	state <gateway>            Show the current appliance state
//	energy <gateway>           Show the latest consumption figures
//	errors <gateway>           Show the appliance fault list
//	set-temp <gateway> <temp>  Set the water heater target temperature
//	set-mode <gateway> <mode>  Set the operation mode by display name
//	repl                       Interactive session with the same verbs
//
// Credentials come from the -username and -password flags or from the
// ARISTON_USERNAME and ARISTON_PASSWORD environment variables.
//
// Examples:
//
//	aristonctl -username me@example.com -password secret discover
//	ARISTON_USERNAME=me@example.com ARISTON_PASSWORD=secret aristonctl state AB123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	ariston "github.com/tj-smith47/ariston-go"
)

var (
	username string
	password string
	locale   string
	usUnits  bool
	timeout  time.Duration
)

func init() {
	flag.StringVar(&username, "username", "", "Ariston NET account username (or ARISTON_USERNAME)")
	flag.StringVar(&password, "password", "", "Ariston NET account password (or ARISTON_PASSWORD)")
	flag.StringVar(&locale, "locale", "", "Culture tag for localized mode texts, e.g. en-US")
	flag.BoolVar(&usUnits, "us", false, "Use US customary units instead of metric")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout per exchange")
}

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `Usage: aristonctl [flags] <command> [args]

Commands:
  discover                   List the account's gateways
  state <gateway>            Show the current appliance state
  energy <gateway>           Show the latest consumption figures
  errors <gateway>           Show the appliance fault list
  set-temp <gateway> <temp>  Set the water heater target temperature
  set-mode <gateway> <mode>  Set the operation mode by display name
  repl                       Interactive session with the same verbs

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	switch args[0] {
	case "discover", "state", "energy", "errors", "set-temp", "set-mode", "repl":
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q.\n\n", args[0])
		usage()
		os.Exit(2)
	}

	user, pass, err := credentials()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(os.Stdout)
	if err := app.connect(ctx, user, pass); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	if args[0] == "repl" {
		if err := app.repl(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := app.run(ctx, args[0], args[1:]); err != nil {
		log.Fatal(err)
	}
}

func credentials() (string, string, error) {
	user := username
	if user == "" {
		user = os.Getenv("ARISTON_USERNAME")
	}
	pass := password
	if pass == "" {
		pass = os.Getenv("ARISTON_PASSWORD")
	}
	if user == "" || pass == "" {
		return "", "", errors.New("credentials required: set -username/-password or ARISTON_USERNAME/ARISTON_PASSWORD")
	}
	return user, pass, nil
}

// app carries the authenticated session and the device handles the verbs
// share. Handles are cached per gateway so repeated verbs reuse their
// feature and state caches.
type app struct {
	session *ariston.Ariston
	opts    []ariston.DeviceOption
	devices map[string]ariston.Device
	out     io.Writer
}

func newApp(out io.Writer) *app {
	return &app{
		session: &ariston.Ariston{},
		devices: make(map[string]ariston.Device),
		out:     out,
	}
}

func (a *app) connect(ctx context.Context, user, pass string) error {
	a.opts = []ariston.DeviceOption{ariston.Metric(!usUnits)}
	if locale != "" {
		a.opts = append(a.opts, ariston.Locale(locale))
	}
	return a.session.ConnectContext(ctx, user, pass, ariston.WithTimeout(timeout))
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "discover":
		return a.cmdDiscover(ctx)
	case "state":
		if len(args) != 1 {
			return errors.New("usage: state <gateway>")
		}
		return a.cmdState(ctx, args[0])
	case "energy":
		if len(args) != 1 {
			return errors.New("usage: energy <gateway>")
		}
		return a.cmdEnergy(ctx, args[0])
	case "errors":
		if len(args) != 1 {
			return errors.New("usage: errors <gateway>")
		}
		return a.cmdErrors(ctx, args[0])
	case "set-temp":
		if len(args) != 2 {
			return errors.New("usage: set-temp <gateway> <temp>")
		}
		return a.cmdSetTemp(ctx, args[0], args[1])
	case "set-mode":
		if len(args) < 2 {
			return errors.New("usage: set-mode <gateway> <mode>")
		}
		return a.cmdSetMode(ctx, args[0], strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// device resolves a gateway id to its cached handle, discovering on first
// use.
func (a *app) device(ctx context.Context, gateway string) (ariston.Device, error) {
	if dev, ok := a.devices[gateway]; ok {
		return dev, nil
	}
	dev, err := a.session.HelloContext(ctx, gateway, a.opts...)
	if err != nil {
		return nil, err
	}
	a.devices[gateway] = dev
	return dev, nil
}

func (a *app) cmdDiscover(ctx context.Context) error {
	gateways, err := a.session.DiscoverContext(ctx)
	if err != nil {
		return err
	}
	if len(gateways) == 0 {
		fmt.Fprintln(a.out, "No gateways on this account.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "GATEWAY\tNAME\tSYSTEM\tWHE\tSERIAL")
	for _, gw := range gateways {
		whe := "-"
		if gw.SystemType == ariston.SystemTypeVelis {
			whe = gw.WheType.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", gw.ID, gw.Name, gw.SystemType.String(), whe, gw.SerialNumber)
	}
	return w.Flush()
}

func (a *app) cmdState(ctx context.Context, gateway string) error {
	dev, err := a.device(ctx, gateway)
	if err != nil {
		return err
	}
	if err := dev.UpdateStateContext(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Gateway:  %s", dev.Gateway())
	if dev.Name() != "" {
		fmt.Fprintf(a.out, " (%s)", dev.Name())
	}
	fmt.Fprintln(a.out)

	system := dev.SystemType().String()
	if dev.WheType() != ariston.WheTypeUnknown {
		system += " / " + dev.WheType().String()
	}
	fmt.Fprintf(a.out, "System:   %s\n", system)
	if fw := dev.FirmwareVersion(); fw != "" {
		fmt.Fprintf(a.out, "Firmware: %s\n", fw)
	}

	unit := dev.WaterHeaterTemperatureUnit()
	decimals := dev.WaterHeaterTemperatureDecimals()
	if v := dev.WaterHeaterCurrentTemperature(); v != nil {
		fmt.Fprintf(a.out, "Current:  %.*f %s\n", decimals, *v, unit)
	}
	if v := dev.WaterHeaterTargetTemperature(); v != nil {
		fmt.Fprintf(a.out, "Target:   %.*f %s\n", decimals, *v, unit)
	}
	if max := dev.WaterHeaterMaximumTemperature(); max != nil {
		fmt.Fprintf(a.out, "Range:    %.*f to %.*f %s (step %g)\n",
			decimals, dev.WaterHeaterMinimumTemperature(), decimals, *max, unit,
			dev.WaterHeaterTemperatureStep())
	}
	if mode := dev.WaterHeaterModeValue(); mode != nil {
		if text := dev.WaterHeaterCurrentModeText(); text != "" {
			fmt.Fprintf(a.out, "Mode:     %s (%d)\n", text, *mode)
		} else {
			fmt.Fprintf(a.out, "Mode:     %d\n", *mode)
		}
	}
	if texts := dev.WaterHeaterModeOperationTexts(); len(texts) > 0 {
		fmt.Fprintf(a.out, "Modes:    %s\n", strings.Join(texts, ", "))
	}
	return nil
}

func (a *app) cmdEnergy(ctx context.Context, gateway string) error {
	dev, err := a.device(ctx, gateway)
	if err != nil {
		return err
	}
	if dev.Features() == nil {
		if _, err := dev.GetFeaturesContext(ctx); err != nil {
			return err
		}
	}
	if !dev.HasMetering() {
		fmt.Fprintf(a.out, "Gateway %s reports no energy metering.\n", gateway)
		return nil
	}
	if err := dev.UpdateEnergyContext(ctx); err != nil {
		return err
	}

	kinds := []ariston.ConsumptionType{
		ariston.ConsumptionTypeChTotal,
		ariston.ConsumptionTypeDhwTotal,
		ariston.ConsumptionTypeChGas,
		ariston.ConsumptionTypeDhwHeatingPumpElec,
		ariston.ConsumptionTypeDhwResistorElec,
		ariston.ConsumptionTypeDhwGas,
		ariston.ConsumptionTypeChElec,
		ariston.ConsumptionTypeDhwElec,
	}

	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tLAST DAY")
	reported := 0
	for _, kind := range kinds {
		if v := dev.ConsumptionLastValue(kind, ariston.ConsumptionTimeIntervalLastDay); v != nil {
			fmt.Fprintf(w, "%s\t%g\n", kind.String(), *v)
			reported++
		}
	}
	if reported == 0 {
		fmt.Fprintf(a.out, "No consumption data for gateway %s.\n", gateway)
		return nil
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if last := dev.EnergyLastChanged(); !last.IsZero() {
		fmt.Fprintf(a.out, "Last changed: %s\n", last.Format(time.RFC3339))
	}
	return nil
}

func (a *app) cmdErrors(ctx context.Context, gateway string) error {
	dev, err := a.device(ctx, gateway)
	if err != nil {
		return err
	}
	busErrors, err := dev.GetBusErrorsContext(ctx)
	if err != nil {
		return err
	}
	if len(busErrors) == 0 {
		fmt.Fprintf(a.out, "No active errors on gateway %s.\n", gateway)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tCODE\tDESCRIPTION\tBLOCKING")
	for _, be := range busErrors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", be.Timestamp, be.Code, be.ErrDex, be.Blocking)
	}
	return w.Flush()
}

func (a *app) cmdSetTemp(ctx context.Context, gateway, raw string) error {
	temp, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid temperature %q", raw)
	}
	dev, err := a.device(ctx, gateway)
	if err != nil {
		return err
	}
	if err := dev.SetWaterHeaterTemperatureContext(ctx, temp); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Target temperature set to %g.\n", temp)
	return nil
}

func (a *app) cmdSetMode(ctx context.Context, gateway, mode string) error {
	dev, err := a.device(ctx, gateway)
	if err != nil {
		return err
	}
	// Mode names resolve against the cached mode table; fetch state once
	// when the handle has not seen it yet.
	if len(dev.WaterHeaterModeOperationTexts()) == 0 {
		if err := dev.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	if err := dev.SetWaterHeaterModeContext(ctx, mode); err != nil {
		if texts := dev.WaterHeaterModeOperationTexts(); len(texts) > 0 {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(texts, ", "))
		}
		return err
	}
	fmt.Fprintf(a.out, "Mode set to %s.\n", mode)
	return nil
}
