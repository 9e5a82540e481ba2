package input

// Event types from linux/input-event-codes.h.
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_MSC = 0x04
	EV_SW  = 0x05
)

const (
	SYN_REPORT = 0x00
	MSC_SCAN   = 0x04
)

// Key codes used by the hotkey table.
const (
	KEY_CAPSLOCK       uint16 = 58
	KEY_NUMLOCK        uint16 = 69
	KEY_SCROLLLOCK     uint16 = 70
	KEY_MUTE           uint16 = 113
	KEY_VOLUMEDOWN     uint16 = 114
	KEY_VOLUMEUP       uint16 = 115
	KEY_BRIGHTNESSDOWN uint16 = 224
	KEY_BRIGHTNESSUP   uint16 = 225
	KEY_KBDILLUMTOGGLE uint16 = 228
	KEY_KBDILLUMDOWN   uint16 = 229
	KEY_KBDILLUMUP     uint16 = 230
	KEY_RFKILL         uint16 = 247
	KEY_FN_ESC         uint16 = 0x1d1
	KEY_FN_F2          uint16 = 0x1d3
	KEY_FN_F5          uint16 = 0x1d6
	KEY_FN_F12         uint16 = 0x1dd
)

// Switch codes.
const (
	SW_RFKILL_ALL uint16 = 0x03
)

// uinput ioctls (linux/uinput.h, ioctl base 'U').
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetMscBit  = 0x40045568
	uiSetSwBit   = 0x4004556d
)

const (
	uinputMaxNameSize = 80
	absSize           = 64
	busHost           = 0x19
)
