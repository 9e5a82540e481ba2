package core

import (
	"qc71-service/internal/acpi"
	"qc71-service/internal/types"
)

// Notifier is the firmware notification subsystem: it delivers decoded
// event payloads per source to an installed callback.
type Notifier interface {
	Install(source string, cb acpi.Callback) error
	Remove(source string)
}

// InputDevice is the synthetic input device events are forwarded to.
// All reports are fire-and-forget.
type InputDevice interface {
	ReportKey(code uint16, pressed bool, autorelease bool) error
	ReportSwitch(sw uint16, value int32) error
	ReportScan(code uint8) error
	Close() error
}

// MessagingClient publishes attribute notifications and platform state to
// observers.
type MessagingClient interface {
	NotifyAttribute(name string) error
	PublishProfile(profile types.Profile) error
}

// ProfileCycler advances the fan profile ring by one step.
type ProfileCycler interface {
	Cycle() (types.Profile, byte, error)
}

// FnLockAccessor reads and writes the firmware Fn lock state (0 or 1).
type FnLockAccessor interface {
	Get() (int, error)
	Set(value int) error
}

// BacklightNotifier republishes the keyboard backlight brightness after a
// hardware-initiated change.
type BacklightNotifier interface {
	Refresh()
}

// WifiStateFunc queries the radio state: 1 live, 0 blocked.
type WifiStateFunc func() (int, error)
