// Package keymap holds the static table mapping firmware event codes to
// input actions. Codes marked Ignore reach userspace through another
// channel (keyboard controller, video bus) and are listed only so the
// dispatcher does not double-report them.
package keymap

import "qc71-service/internal/input"

type Kind int

const (
	// Ignore suppresses the event; it is delivered by other means.
	Ignore Kind = iota
	// Key emits a key press (with automatic release).
	Key
	// Switch emits a switch state change.
	Switch
)

// Entry describes the action bound to one event code. Entries are
// immutable; the table is fixed at build time.
type Entry struct {
	Code   uint8
	Kind   Kind
	Key    uint16 // input key code, Kind == Key
	Switch uint16 // input switch code, Kind == Switch
	Value  int32  // switch value, Kind == Switch
}

var hotkeys = []Entry{
	// reported via keyboard controller
	{Code: 0x01, Kind: Ignore, Key: input.KEY_CAPSLOCK},
	{Code: 0x02, Kind: Ignore, Key: input.KEY_NUMLOCK},
	{Code: 0x03, Kind: Ignore, Key: input.KEY_SCROLLLOCK},

	// reported via "video bus"
	{Code: 0x14, Kind: Ignore, Key: input.KEY_BRIGHTNESSUP},
	{Code: 0x15, Kind: Ignore, Key: input.KEY_BRIGHTNESSDOWN},

	// reported in automatic mode when rfkill state changes
	{Code: 0x1a, Kind: Switch, Switch: input.SW_RFKILL_ALL, Value: 1},
	{Code: 0x1b, Kind: Switch, Switch: input.SW_RFKILL_ALL, Value: 0},

	// reported via keyboard controller
	{Code: 0x35, Kind: Ignore, Key: input.KEY_MUTE},
	{Code: 0x36, Kind: Ignore, Key: input.KEY_VOLUMEDOWN},
	{Code: 0x37, Kind: Ignore, Key: input.KEY_VOLUMEUP},

	// not reported by other means when in manual mode,
	// handled automatically when in automatic mode
	{Code: 0xa4, Kind: Key, Key: input.KEY_RFKILL},
	{Code: 0xa5, Kind: Key, Key: input.KEY_FN_F2},
	{Code: 0xb0, Kind: Key, Key: input.KEY_FN_F5},
	{Code: 0xb1, Kind: Key, Key: input.KEY_KBDILLUMDOWN},
	{Code: 0xb2, Kind: Key, Key: input.KEY_KBDILLUMUP},
	{Code: 0xb3, Kind: Key, Key: input.KEY_KBDILLUMTOGGLE},
	{Code: 0xb8, Kind: Key, Key: input.KEY_FN_ESC},
	{Code: 0xbc, Kind: Key, Key: input.KEY_FN_F5},
	{Code: 0xcf, Kind: Key, Key: input.KEY_FN_F12},
}

var byCode = func() map[uint8]Entry {
	m := make(map[uint8]Entry, len(hotkeys))
	for _, e := range hotkeys {
		m[e.Code] = e
	}
	return m
}()

// Lookup returns the action bound to code. The second return value is
// false for codes with no entry, which is distinct from an Ignore entry.
func Lookup(code uint8) (Entry, bool) {
	e, ok := byCode[code]
	return e, ok
}

// Keys lists the key codes the synthetic input device must advertise.
func Keys() []uint16 {
	var keys []uint16
	seen := make(map[uint16]bool)
	for _, e := range hotkeys {
		if e.Kind != Key || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		keys = append(keys, e.Key)
	}
	return keys
}

// Switches lists the switch codes the synthetic input device must advertise.
func Switches() []uint16 {
	var switches []uint16
	seen := make(map[uint16]bool)
	for _, e := range hotkeys {
		if e.Kind != Switch || seen[e.Switch] {
			continue
		}
		seen[e.Switch] = true
		switches = append(switches, e.Switch)
	}
	return switches
}
