package core

import (
	"sync"

	"qc71-service/internal/input"
	"qc71-service/internal/keymap"
	"qc71-service/internal/logger"
	"qc71-service/internal/types"
)

// Firmware notification source identifiers (WMI event GUIDs). Each has an
// independent installed/not-installed lifecycle.
const (
	SourceEvent70 = "ABBC0F70-8EA1-11D1-00A0-C90629100000"
	SourceEvent71 = "ABBC0F71-8EA1-11D1-00A0-C90629100000"
	SourceEvent72 = "ABBC0F72-8EA1-11D1-00A0-C90629100000"
)

type eventSource struct {
	id        string
	installed bool
}

// Config wires the platform system to its collaborators. The input
// device is constructed by the system itself (it owns the device
// lifecycle), hence the factory.
type Config struct {
	Notifier       Notifier
	Messaging      MessagingClient
	Fan            ProfileCycler
	FnLock         FnLockAccessor
	Backlight      BacklightNotifier
	WifiState      WifiStateFunc
	Model          types.ModelVariant
	NewInputDevice func() (InputDevice, error)
	Logger         *logger.Logger
}

// PlatformSystem translates firmware event codes into input events,
// register mutations and observer notifications, and manages the
// notification source lifecycle.
//
// Start and Stop are expected to run sequentially with respect to each
// other; the per-source installed flags rely on that ordering. Dispatch
// may be invoked concurrently by the notification subsystem, including
// while Stop runs, so the input handle is guarded.
type PlatformSystem struct {
	notifier  Notifier
	messaging MessagingClient
	fan       ProfileCycler
	fnLock    FnLockAccessor
	backlight BacklightNotifier
	wifiState WifiStateFunc
	model     types.ModelVariant
	newInput  func() (InputDevice, error)
	logger    *logger.Logger

	sources []eventSource

	inputMu sync.RWMutex
	input   InputDevice
}

func NewPlatformSystem(cfg Config) *PlatformSystem {
	return &PlatformSystem{
		notifier:  cfg.Notifier,
		messaging: cfg.Messaging,
		fan:       cfg.Fan,
		fnLock:    cfg.FnLock,
		backlight: cfg.Backlight,
		wifiState: cfg.WifiState,
		model:     cfg.Model,
		newInput:  cfg.NewInputDevice,
		logger:    cfg.Logger,
		sources: []eventSource{
			{id: SourceEvent70},
			{id: SourceEvent71},
			{id: SourceEvent72},
		},
	}
}

// Start creates the synthetic input device and installs the event
// callback on every notification source. A source that fails to install
// is logged and skipped; the others are still attempted. Failure to
// create the input device degrades the system to diagnostic-only mode.
func (s *PlatformSystem) Start() error {
	s.setupInputDevice()

	for i := range s.sources {
		src := &s.sources[i]
		if err := s.notifier.Install(src.id, s.Dispatch); err != nil {
			s.logger.Warnf("could not install notify handler for %s: %v", src.id, err)
			continue
		}
		src.installed = true
		s.logger.Infof("installed notify handler for %s", src.id)
	}

	return nil
}

func (s *PlatformSystem) setupInputDevice() {
	if s.newInput == nil {
		return
	}

	dev, err := s.newInput()
	if err != nil {
		s.logger.Warnf("input device unavailable, events are diagnostic-only: %v", err)
		return
	}

	state, err := s.wifiState()
	if err != nil {
		s.logger.Warnf("failed to query wifi state, assuming blocked: %v", err)
		state = 0
	}
	if err := dev.ReportSwitch(input.SW_RFKILL_ALL, int32(state)); err != nil {
		s.logger.Warnf("failed to seed rfkill switch state: %v", err)
	}

	s.inputMu.Lock()
	s.input = dev
	s.inputMu.Unlock()
}

func (s *PlatformSystem) currentInput() InputDevice {
	s.inputMu.RLock()
	defer s.inputMu.RUnlock()
	return s.input
}

// Stop removes the callbacks for all installed sources and releases the
// input device. Safe to call if Start never ran or partially failed.
func (s *PlatformSystem) Stop() {
	for i := range s.sources {
		src := &s.sources[i]
		if !src.installed {
			continue
		}
		s.notifier.Remove(src.id)
		src.installed = false
	}

	s.inputMu.Lock()
	dev := s.input
	s.input = nil
	s.inputMu.Unlock()
	if dev != nil {
		dev.Close()
	}
}

// Dispatch handles one firmware notification. Payload shapes other than
// integers, and all payloads on the plain notify sources, produce
// diagnostic output only.
func (s *PlatformSystem) Dispatch(source string, payload types.EventPayload) {
	switch payload.Kind {
	case types.PayloadInteger:
		s.logger.Debugf("source=%s int=%#x", source, payload.Integer)
	case types.PayloadString:
		s.logger.Debugf("source=%s string=%q", source, payload.String)
	case types.PayloadBuffer:
		s.logger.Debugf("source=%s buffer=% x", source, payload.Buffer)
	default:
		s.logger.Debugf("source=%s no payload", source)
	}

	if source != SourceEvent72 {
		return
	}
	if payload.Kind != types.PayloadInteger {
		s.logger.Debugf("unexpected payload shape for system event source")
		return
	}

	s.handleSystemEvent(payload.Integer)
}

func (s *PlatformSystem) handleSystemEvent(value uint64) {
	// The event code space is one byte. A wider value must not be
	// narrowed: it would alias onto a real code and trigger its side
	// effects.
	if value > 0xff {
		s.logger.Warnf("unknown code: %#x", value)
		return
	}
	code := uint8(value)

	d := decide(code, s.model)
	if d.Known {
		s.logger.Debugf("%s (code %#04x)", d.Desc, code)
	} else {
		s.logger.Warnf("unknown code: %#04x", code)
	}

	for _, effect := range d.Effects {
		s.applyEffect(effect)
	}

	if d.Report {
		if dev := s.currentInput(); dev != nil {
			s.report(dev, code)
		}
	}
}

func (s *PlatformSystem) applyEffect(effect SideEffect) {
	switch effect.Kind {
	case EffectCycleProfile:
		profile, reg, err := s.fan.Cycle()
		if err != nil {
			s.logger.Errorf("fan profile cycle failed: %v", err)
			return
		}
		s.logger.Infof("fan profile is now %s (register %#02x)", profile, reg)
		if err := s.messaging.PublishProfile(profile); err != nil {
			s.logger.Warnf("failed to publish fan profile: %v", err)
		}

	case EffectToggleFnLock:
		s.toggleFnLock()

	case EffectRefreshKeyboardBacklight:
		s.backlight.Refresh()

	case EffectNotifyAttribute:
		if err := s.messaging.NotifyAttribute(effect.Attribute); err != nil {
			s.logger.Warnf("failed to notify %s: %v", effect.Attribute, err)
		}
	}
}

// toggleFnLock reads the Fn lock state and writes its inverse. The state
// the firmware reports inside the event handler lags the toggle that
// triggered the event, so the write is derived from the read value
// rather than re-queried.
func (s *PlatformSystem) toggleFnLock() {
	state, err := s.fnLock.Get()
	if err != nil {
		s.logger.Debugf("failed to read Fn lock state: %v", err)
		return
	}

	next := 1 - state&1
	s.logger.Infof("setting Fn lock state from %d to %d", state, next)
	if err := s.fnLock.Set(next); err != nil {
		s.logger.Errorf("failed to set Fn lock state: %v", err)
	}
}

// report forwards an event code to the input device through the hotkey
// table. Codes without an entry are surfaced as raw scan codes.
func (s *PlatformSystem) report(dev InputDevice, code uint8) {
	entry, ok := keymap.Lookup(code)
	if !ok {
		if err := dev.ReportScan(code); err != nil {
			s.logger.Debugf("failed to report scan code %#04x: %v", code, err)
		}
		return
	}

	switch entry.Kind {
	case keymap.Ignore:
		// delivered through another channel, never double-report

	case keymap.Key:
		if err := dev.ReportKey(entry.Key, true, true); err != nil {
			s.logger.Debugf("failed to report key %d: %v", entry.Key, err)
		}

	case keymap.Switch:
		if err := dev.ReportSwitch(entry.Switch, entry.Value); err != nil {
			s.logger.Debugf("failed to report switch %d: %v", entry.Switch, err)
		}
	}
}
