// Package leds mirrors the LED class devices the platform exposes and
// republishes hardware-initiated brightness changes for the keyboard
// backlight.
package leds

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"qc71-service/internal/logger"
)

const (
	SysfsDir = "/sys/class/leds"

	// Name suffix identifying the keyboard backlight device, per the LED
	// class naming convention devicename::kbd_backlight.
	KbdBacklightSuffix = "::kbd_backlight"
)

// Device is one LED class device. Brightness is the last value read from
// hardware; the per-device mutex serializes refreshes against other
// accessors of the same device.
type Device struct {
	Name      string
	HwChanged bool // brightness changes can originate in hardware

	mu         sync.Mutex
	brightness int
	refresh    func() (int, error)
}

// NewDevice builds a registry entry around a refresh function that
// re-reads the brightness from hardware.
func NewDevice(name string, hwChanged bool, refresh func() (int, error)) *Device {
	return &Device{Name: name, HwChanged: hwChanged, refresh: refresh}
}

// Brightness returns the cached brightness.
func (d *Device) Brightness() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// Registry is the set of known LED devices, guarded by a read/write lock:
// scans take the read lock, membership changes the write lock.
type Registry struct {
	mu      sync.RWMutex
	devices []*Device
	logger  *logger.Logger
}

func NewRegistry(l *logger.Logger) *Registry {
	return &Registry{logger: l}
}

func (r *Registry) Add(d *Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = append(r.devices, d)
}

// ScanSysfs populates the registry from the LED class directory. A device
// is hardware-change capable when it exposes a brightness_hw_changed
// attribute.
func (r *Registry) ScanSysfs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read LED class dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		base := filepath.Join(dir, name)

		_, err := os.Stat(filepath.Join(base, "brightness_hw_changed"))
		hwChanged := err == nil

		brightnessPath := filepath.Join(base, "brightness")
		r.Add(NewDevice(name, hwChanged, func() (int, error) {
			return readBrightness(brightnessPath)
		}))
		r.logger.Debugf("registered LED device %s (hw_changed=%v)", name, hwChanged)
	}
	return nil
}

func readBrightness(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read brightness: %w", err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse brightness: %w", err)
	}
	return value, nil
}
