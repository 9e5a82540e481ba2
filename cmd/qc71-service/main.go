package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"qc71-service/internal/acpi"
	"qc71-service/internal/core"
	"qc71-service/internal/hardware"
	"qc71-service/internal/input"
	"qc71-service/internal/keymap"
	"qc71-service/internal/leds"
	"qc71-service/internal/logger"
	"qc71-service/internal/messaging"
	"qc71-service/internal/types"
)

func main() {
	var serviceLogLevel int
	var redisHost string
	var redisPort int
	var modelName string
	var ecPath string
	var socketPath string
	flag.IntVar(&serviceLogLevel, "log", 3, "Service log level (0=NONE, 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG)")
	flag.StringVar(&redisHost, "redis-host", "127.0.0.1", "Redis server host")
	flag.IntVar(&redisPort, "redis-port", 6379, "Redis server port")
	flag.StringVar(&modelName, "model", "", "Model variant override (evo, creative, executive, hero, titan)")
	flag.StringVar(&ecPath, "ec-path", hardware.ECIOPath, "Embedded controller io file")
	flag.StringVar(&socketPath, "socket", acpi.SocketPath, "acpid event socket")

	flag.Parse()

	var stdLogger *log.Logger
	if os.Getenv("INVOCATION_ID") != "" {
		// Running under systemd, use minimal format
		stdLogger = log.New(os.Stdout, "", 0)
	} else {
		// Running interactively, use timestamps
		stdLogger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	}

	l := logger.NewLogger(stdLogger, logger.LogLevel(serviceLogLevel))

	l.Infof("Starting QC71 platform service...")

	model := types.ParseModelVariant(modelName)
	if modelName == "" {
		model = hardware.DetectModelVariant()
	}
	l.Infof("Model variant: %s", model)

	ec := hardware.NewECRegisterIO(ecPath)
	fan := hardware.NewFanControl(ec, l.WithTag("fan"))
	fnLock := hardware.NewFnLock(ec)

	registry := leds.NewRegistry(l.WithTag("leds"))
	if err := registry.ScanSysfs(leds.SysfsDir); err != nil {
		l.Warnf("LED device scan failed: %v", err)
	}

	var msg *messaging.Client
	msg = messaging.NewClient(redisHost, redisPort, l.WithTag("redis"), messaging.Callbacks{
		ProfileCycleCallback: func() error {
			profile, _, err := fan.Cycle()
			if err != nil {
				return err
			}
			return msg.PublishProfile(profile)
		},
	})
	if err := msg.Connect(); err != nil {
		l.Fatalf("Failed to connect to Redis: %v", err)
	}

	backlight := leds.NewNotifier(registry, msg.PublishKeyboardBacklight, l.WithTag("leds"))

	listener := acpi.NewListener(socketPath, l.WithTag("acpi"))

	system := core.NewPlatformSystem(core.Config{
		Notifier:  listener,
		Messaging: msg,
		Fan:       fan,
		FnLock:    fnLock,
		Backlight: backlight,
		WifiState: hardware.WifiState,
		Model:     model,
		NewInputDevice: func() (core.InputDevice, error) {
			return input.NewDevice("QC71 laptop input device",
				keymap.Keys(), keymap.Switches(), l.WithTag("input"))
		},
		Logger: l.WithTag("core"),
	})
	if err := system.Start(); err != nil {
		l.Fatalf("Failed to start system: %v", err)
	}

	msg.StartListening()

	l.Infof("System started successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Serve(gctx)
	})

	daemon.SdNotify(false, daemon.SdNotifyReady)

	<-gctx.Done()
	l.Infof("Shutting down...")
	daemon.SdNotify(false, daemon.SdNotifyStopping)

	// drain the event listener before tearing down its dispatch target
	if err := g.Wait(); err != nil && err != context.Canceled {
		l.Warnf("Event listener exited: %v", err)
	}

	system.Stop()
	if err := msg.Close(); err != nil {
		l.Warnf("Redis shutdown: %v", err)
	}
	l.Infof("Shutdown complete")
}
