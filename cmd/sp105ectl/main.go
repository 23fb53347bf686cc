// Command sp105ectl drives an SP105E-family LED strip controller over
// Bluetooth Low Energy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/kernzerfall/sp105e-go/internal/ble"
	"github.com/kernzerfall/sp105e-go/internal/ble/protocol"
	"github.com/kernzerfall/sp105e-go/internal/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sp105ectl [flags] <command> [args]

Commands:
  power                      toggle power
  set-pixel <type>           set the LED chip type (e.g. ws2811)
  set-number <n>             set the number of pixels [1,2048]
  set-order <order>          set the color order (rgb, rbg, grb, gbr, brg, bgr)
  set-color <r> <g> <b>      set a custom color (components 0-255)
  set-fixed-color <color>    red, green, blue, white or alt-white
  set-animation <id>         start a preprogrammed animation [0,200]
  speed <up|down>            adjust the animation speed by one step
  brightness <up|down>       adjust the brightness by one step
  status                     query and print the controller status
  hello                      verify the controller handshake
  scan                       list nearby controllers

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/sp105ectl/config.yaml)")
	target := flag.String("target", "", "MAC of the target controller")
	adapterID := flag.String("adapter", "", "host Bluetooth adapter id (e.g. hci0)")
	profileName := flag.String("profile", "", "firmware profile name")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *target != "" {
		cfg.Target = *target
	}
	if *adapterID != "" {
		cfg.Adapter = *adapterID
	}
	if *profileName != "" {
		cfg.Profile = *profileName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	setLogLevel(cfg.LogLevel)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	verb, rest := args[0], args[1:]

	adapter := ble.NewBlueZAdapter(cfg.Adapter)
	ctx := context.Background()

	if verb == "scan" {
		runScan(adapter, cfg.ScanTimeout.Std())
		return
	}

	if cfg.Target == "" {
		log.Fatalf("no target device: pass --target or set target in the config")
	}
	profile, err := cfg.DeviceProfile()
	if err != nil {
		log.Fatalf("profile: %v", err)
	}

	client := ble.NewClient(adapter, cfg.Target, profile, ble.Options{
		ConnectAttempts: cfg.Connect.Attempts,
		ConnectBackoff:  cfg.Connect.Backoff.Std(),
		StatusTimeout:   cfg.StatusTimeout.Std(),
	})
	if err := client.Connect(ctx); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if err := run(ctx, client, verb, rest); err != nil {
		log.Fatalf("%s: %v", verb, err)
	}
}

// run executes one verb against a connected client.
func run(ctx context.Context, client *ble.Client, verb string, args []string) error {
	switch verb {
	case "power":
		return client.Send(protocol.Power())

	case "set-pixel":
		if len(args) != 1 {
			return fmt.Errorf("usage: set-pixel <type>")
		}
		t, err := protocol.ParsePixelType(args[0])
		if err != nil {
			return err
		}
		return client.Send(protocol.SetPixelType(t))

	case "set-number":
		if len(args) != 1 {
			return fmt.Errorf("usage: set-number <n>")
		}
		n, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("pixel count %q: %w", args[0], err)
		}
		cmd, err := protocol.SetPixelCount(uint16(n))
		if err != nil {
			return err
		}
		return client.Send(cmd)

	case "set-order":
		if len(args) != 1 {
			return fmt.Errorf("usage: set-order <order>")
		}
		order, err := protocol.ParseColorOrder(args[0])
		if err != nil {
			return err
		}
		return client.Send(protocol.SetColorOrder(order))

	case "set-color":
		if len(args) != 3 {
			return fmt.Errorf("usage: set-color <r> <g> <b>")
		}
		var rgb [3]uint8
		for i, arg := range args {
			v, err := strconv.ParseUint(arg, 10, 8)
			if err != nil {
				return fmt.Errorf("color component %q: %w", arg, err)
			}
			rgb[i] = uint8(v)
		}
		return client.Send(protocol.Color(rgb[0], rgb[1], rgb[2]))

	case "set-fixed-color":
		if len(args) != 1 {
			return fmt.Errorf("usage: set-fixed-color <color>")
		}
		cmd, err := fixedColorCommand(args[0])
		if err != nil {
			return err
		}
		return client.Send(cmd)

	case "set-animation":
		if len(args) != 1 {
			return fmt.Errorf("usage: set-animation <id>")
		}
		id, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return fmt.Errorf("animation id %q: %w", args[0], err)
		}
		cmd, err := protocol.Animation(uint8(id))
		if err != nil {
			return err
		}
		return client.Send(cmd)

	case "speed":
		cmd, err := stepCommand(args, protocol.SpeedUp(), protocol.SpeedDown())
		if err != nil {
			return err
		}
		return client.Send(cmd)

	case "brightness":
		cmd, err := stepCommand(args, protocol.BrightnessUp(), protocol.BrightnessDown())
		if err != nil {
			return err
		}
		return client.Send(cmd)

	case "status":
		status, err := client.QueryStatus(ctx)
		if err != nil {
			return err
		}
		printStatus(status)
		return nil

	case "hello":
		if err := client.Hello(ctx); err != nil {
			return err
		}
		fmt.Println("controller answered the handshake")
		return nil

	default:
		return fmt.Errorf("unknown command %q", verb)
	}
}

// stepCommand maps an up/down argument to the given command pair.
func stepCommand(args []string, up, down protocol.Command) (protocol.Command, error) {
	if len(args) != 1 {
		return protocol.Command{}, fmt.Errorf("usage: <up|down>")
	}
	switch args[0] {
	case "up":
		return up, nil
	case "down":
		return down, nil
	}
	return protocol.Command{}, fmt.Errorf("want up or down, got %q", args[0])
}

// fixedColorCommand maps a CLI color name to its fixed-color command.
func fixedColorCommand(name string) (protocol.Command, error) {
	switch name {
	case "red":
		return protocol.FixedRed(), nil
	case "green":
		return protocol.FixedGreen(), nil
	case "blue":
		return protocol.FixedBlue(), nil
	case "white":
		return protocol.FixedWhite1(), nil
	case "alt-white":
		return protocol.FixedWhite2(), nil
	}
	return protocol.Command{}, fmt.Errorf("unknown fixed color %q (red, green, blue, white, alt-white)", name)
}

func runScan(adapter ble.Adapter, timeout time.Duration) {
	fmt.Printf("scanning for %s...\n", timeout)
	devices, err := ble.ScanForControllers(adapter, timeout)
	if err != nil {
		log.Fatalf("scan: %v", err)
	}
	if len(devices) == 0 {
		fmt.Println("no controllers found")
		return
	}
	for _, d := range devices {
		name := d.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%s  %s  RSSI %d\n", d.Address, name, d.RSSI)
	}
}

func printStatus(s protocol.Status) {
	power := "off"
	if s.Power != 0 {
		power = "on"
	}
	fmt.Println("=== controller status ===")
	fmt.Printf("  Power:       %s\n", power)
	fmt.Printf("  Mode:        %s\n", s.Mode)
	fmt.Printf("  Speed:       %d\n", s.Speed)
	fmt.Printf("  Brightness:  %d\n", s.Brightness)
	fmt.Printf("  Pixel type:  %s\n", s.PixelType)
	fmt.Printf("  Color order: %s\n", s.ColorOrder)
	fmt.Printf("  Reserved:    %02X %02X\n", s.Reserved[0], s.Reserved[1])
	fmt.Println("=========================")
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	return config.Default(), nil
}

// setLogLevel applies the configured level to the default slog logger.
func setLogLevel(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	}
	slog.SetLogLoggerLevel(l)
}
