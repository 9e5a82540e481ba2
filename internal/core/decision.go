package core

import "qc71-service/internal/types"

type EffectKind int

const (
	EffectToggleFnLock EffectKind = iota
	EffectCycleProfile
	EffectNotifyAttribute
	EffectRefreshKeyboardBacklight
)

// SideEffect is one action the dispatcher must carry out for an event.
// Attribute is set for EffectNotifyAttribute only.
type SideEffect struct {
	Kind      EffectKind
	Attribute string
}

// Decision is the outcome of classifying one system event code. Report
// controls whether the code is forwarded to the input device; Known is
// false for codes the firmware protocol does not define (they are still
// reported, as a raw pass-through).
type Decision struct {
	Report  bool
	Known   bool
	Desc    string
	Effects []SideEffect
}

func notify(name string) SideEffect {
	return SideEffect{Kind: EffectNotifyAttribute, Attribute: name}
}

// decide classifies a system event code for the given model variant. It
// is a pure function: all hardware interaction happens when the effects
// are applied.
func decide(code uint8, model types.ModelVariant) Decision {
	d := Decision{Report: true, Known: true}

	switch code {
	case 0x01:
		d.Desc = "caps lock"
	case 0x02:
		d.Desc = "num lock"
	case 0x03:
		d.Desc = "scroll lock"

	case 0x04:
		d.Report = false
		d.Desc = "touchpad on"
	case 0x05:
		d.Report = false
		d.Desc = "touchpad off"

	case 0x14:
		d.Desc = "increase screen brightness"
	case 0x15:
		d.Desc = "decrease screen brightness"

	// triggered in automatic mode when the rfkill hotkey is pressed
	case 0x1a:
		d.Desc = "radio on"
	case 0x1b:
		d.Desc = "radio off"

	case 0x35:
		d.Desc = "toggle mute"
	case 0x36:
		d.Desc = "decrease volume"
	case 0x37:
		d.Desc = "increase volume"

	case 0x39:
		d.Report = false
		d.Desc = "lightbar on"
	case 0x3a:
		d.Report = false
		d.Desc = "lightbar off"
	case 0x3b:
		d.Report = false
		d.Desc = "backlight off"
	case 0x3d:
		d.Report = false
		d.Desc = "backlight half"
	case 0x3f:
		d.Report = false
		d.Desc = "backlight full"

	case 0x40:
		d.Report = false
		d.Desc = "enable super key lock"
	case 0x41:
		d.Report = false
		d.Desc = "disable super key lock"

	case 0xa4:
		d.Desc = "toggle airplane mode"

	case 0xa5:
		d.Desc = "super key lock state changed"
		d.Effects = append(d.Effects, notify("super_key_lock"))

	case 0xa6:
		d.Report = false
		d.Desc = "lightbar state changed"

	case 0xa7:
		d.Report = false
		d.Desc = "fan boost state changed"

	case 0xab:
		d.Report = false
		d.Desc = "AC plugged/unplugged"

	// perf mode button: only some models cycle the profile from here,
	// the rest handle it in firmware
	case 0xb0:
		d.Report = false
		d.Desc = "change performance mode"
		if model == types.ModelEvo || model == types.ModelCreative {
			d.Report = true
			d.Effects = append(d.Effects, SideEffect{Kind: EffectCycleProfile})
		}

	// keyboard backlight steps are handled by the keyboard controller
	case 0xb1:
		d.Desc = "keyboard backlight decrease"
	case 0xb2:
		d.Desc = "keyboard backlight increase"
	case 0xb3:
		d.Desc = "keyboard backlight cycle"

	case 0xb8:
		d.Desc = "toggle Fn lock"
		d.Effects = append(d.Effects,
			SideEffect{Kind: EffectToggleFnLock},
			notify("fn_lock"),
		)

	case 0xbc:
		d.Report = model == types.ModelExecutive
		d.Desc = "change performance mode"
		d.Effects = append(d.Effects, notify("silent_mode"))
		if model == types.ModelHero || model == types.ModelTitan {
			d.Effects = append(d.Effects, notify("turbo_mode"))
		}

	case 0xcf:
		d.Desc = "webcam toggle"

	case 0xf0:
		d.Report = false
		d.Desc = "keyboard backlight changed"
		d.Effects = append(d.Effects, SideEffect{Kind: EffectRefreshKeyboardBacklight})

	default:
		d.Known = false
	}

	return d
}
