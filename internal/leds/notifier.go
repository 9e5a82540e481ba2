package leds

import "qc71-service/internal/logger"

// PublishFunc delivers a hardware-changed brightness value to observers.
type PublishFunc func(brightness int) error

// Notifier refreshes the keyboard backlight entry when the firmware
// signals that it changed the brightness behind our back.
type Notifier struct {
	registry *Registry
	publish  PublishFunc
	logger   *logger.Logger
}

func NewNotifier(registry *Registry, publish PublishFunc, l *logger.Logger) *Notifier {
	return &Notifier{registry: registry, publish: publish, logger: l}
}

// Refresh scans the registry for the keyboard backlight device, re-reads
// its brightness from hardware and republishes it. At most one keyboard
// backlight is expected, so the scan stops at the first match. A failed
// refresh aborts with no publish.
func (n *Notifier) Refresh() {
	n.registry.mu.RLock()
	defer n.registry.mu.RUnlock()

	for _, d := range n.registry.devices {
		if !d.HwChanged {
			continue
		}
		if len(d.Name) < len(KbdBacklightSuffix) {
			continue
		}
		if d.Name[len(d.Name)-len(KbdBacklightSuffix):] != KbdBacklightSuffix {
			continue
		}

		d.mu.Lock()
		value, err := d.refresh()
		if err == nil {
			d.brightness = value
			if err := n.publish(value); err != nil {
				n.logger.Warnf("failed to publish keyboard backlight change: %v", err)
			}
		} else {
			n.logger.Debugf("keyboard backlight refresh failed: %v", err)
		}
		d.mu.Unlock()
		return
	}
}
