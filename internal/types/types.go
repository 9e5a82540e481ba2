package types

import "strings"

// Profile is the user-visible fan/performance mode derived from the fan
// control register bits. It is never stored; every cycle recomputes it
// from the register.
type Profile string

const (
	ProfilePerformance Profile = "performance"
	ProfileBalanced    Profile = "balanced"
	ProfileEnergySaver Profile = "energy-saver"
)

// ModelVariant identifies the laptop model family. It is fixed for the
// lifetime of the process and only gates the behavior of two event codes.
type ModelVariant int

const (
	ModelUnknown ModelVariant = iota
	ModelEvo
	ModelCreative
	ModelExecutive
	ModelHero
	ModelTitan
)

func (m ModelVariant) String() string {
	switch m {
	case ModelEvo:
		return "evo"
	case ModelCreative:
		return "creative"
	case ModelExecutive:
		return "executive"
	case ModelHero:
		return "hero"
	case ModelTitan:
		return "titan"
	default:
		return "unknown"
	}
}

// ParseModelVariant maps a model name (flag value or DMI product name) to
// a variant. Matching is case-insensitive and tolerates trailing model
// numbers ("EVO14-A8", "HERO-RPL-15").
func ParseModelVariant(s string) ModelVariant {
	name := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(name, "evo"):
		return ModelEvo
	case strings.HasPrefix(name, "creative"):
		return ModelCreative
	case strings.HasPrefix(name, "executive"):
		return ModelExecutive
	case strings.HasPrefix(name, "hero"):
		return ModelHero
	case strings.HasPrefix(name, "titan"):
		return ModelTitan
	default:
		return ModelUnknown
	}
}

// PayloadKind discriminates the shapes a firmware notification payload
// can take.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadInteger
	PayloadString
	PayloadBuffer
)

// EventPayload is the decoded payload delivered with a firmware
// notification. Only the field matching Kind is meaningful.
type EventPayload struct {
	Kind    PayloadKind
	Integer uint64
	String  string
	Buffer  []byte
}

// IntegerPayload is a convenience constructor for the common case.
func IntegerPayload(v uint64) EventPayload {
	return EventPayload{Kind: PayloadInteger, Integer: v}
}
