package leds

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"qc71-service/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(nil, logger.LogLevelNone)
}

func TestRefreshPublishesKeyboardBacklight(t *testing.T) {
	registry := NewRegistry(testLogger())
	registry.Add(NewDevice("platform::kbd_backlight", true, func() (int, error) {
		return 2, nil
	}))

	var published []int
	n := NewNotifier(registry, func(v int) error {
		published = append(published, v)
		return nil
	}, testLogger())

	n.Refresh()

	if len(published) != 1 || published[0] != 2 {
		t.Errorf("published %v, want [2]", published)
	}
	if got := registry.devices[0].Brightness(); got != 2 {
		t.Errorf("cached brightness %d, want 2", got)
	}
}

func TestRefreshNoMatchingDevice(t *testing.T) {
	registry := NewRegistry(testLogger())
	// wrong suffix
	registry.Add(NewDevice("platform::lightbar", true, func() (int, error) {
		t.Error("lightbar refreshed")
		return 0, nil
	}))
	// right suffix but not hardware-change capable
	registry.Add(NewDevice("dim::kbd_backlight", false, func() (int, error) {
		t.Error("non-capable device refreshed")
		return 0, nil
	}))

	published := false
	n := NewNotifier(registry, func(int) error {
		published = true
		return nil
	}, testLogger())

	n.Refresh()

	if published {
		t.Error("nothing should be published without a matching device")
	}
}

func TestRefreshStopsAtFirstMatch(t *testing.T) {
	registry := NewRegistry(testLogger())
	registry.Add(NewDevice("a::kbd_backlight", true, func() (int, error) {
		return 1, nil
	}))
	registry.Add(NewDevice("b::kbd_backlight", true, func() (int, error) {
		t.Error("second device refreshed")
		return 0, nil
	}))

	var count int
	n := NewNotifier(registry, func(int) error {
		count++
		return nil
	}, testLogger())

	n.Refresh()

	if count != 1 {
		t.Errorf("published %d times, want 1", count)
	}
}

func TestRefreshFailedReadDoesNotPublish(t *testing.T) {
	registry := NewRegistry(testLogger())
	registry.Add(NewDevice("platform::kbd_backlight", true, func() (int, error) {
		return 0, errors.New("read failed")
	}))

	n := NewNotifier(registry, func(int) error {
		t.Error("failed refresh must not publish")
		return nil
	}, testLogger())

	n.Refresh()
}

func TestScanSysfs(t *testing.T) {
	dir := t.TempDir()

	kbd := filepath.Join(dir, "platform::kbd_backlight")
	if err := os.MkdirAll(kbd, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(kbd, "brightness"), []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(kbd, "brightness_hw_changed"), []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lightbar := filepath.Join(dir, "platform::lightbar")
	if err := os.MkdirAll(lightbar, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lightbar, "brightness"), []byte("0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry(testLogger())
	if err := registry.ScanSysfs(dir); err != nil {
		t.Fatalf("ScanSysfs failed: %v", err)
	}

	if len(registry.devices) != 2 {
		t.Fatalf("registered %d devices, want 2", len(registry.devices))
	}

	byName := make(map[string]*Device)
	for _, d := range registry.devices {
		byName[d.Name] = d
	}
	if d := byName["platform::kbd_backlight"]; d == nil || !d.HwChanged {
		t.Error("kbd_backlight should be hardware-change capable")
	}
	if d := byName["platform::lightbar"]; d == nil || d.HwChanged {
		t.Error("lightbar should not be hardware-change capable")
	}

	// the refresh closure reads the sysfs brightness attribute
	value, err := byName["platform::kbd_backlight"].refresh()
	if err != nil || value != 1 {
		t.Errorf("refresh = %d, %v; want 1, nil", value, err)
	}
}

func TestScanSysfsMissingDir(t *testing.T) {
	registry := NewRegistry(testLogger())
	if err := registry.ScanSysfs(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}
