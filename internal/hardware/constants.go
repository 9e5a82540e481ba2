package hardware

// Embedded controller I/O file exposed by the ec_sys kernel module.
const ECIOPath = "/sys/kernel/debug/ec/ec0/io"

// EC register addresses.
const (
	FanCtrlAddr   uint16 = 0x190
	BiosCtrl1Addr uint16 = 0x40
)

// Fan control register bits. Bits outside this set (fan level field and
// friends) are opaque and must survive every write untouched.
const (
	FanCtrlTurbo      byte = 1 << 4
	FanCtrlAuto       byte = 1 << 5
	FanCtrlSilentMode byte = 1 << 6
)

// BIOS control register 1 bits.
const (
	BiosCtrl1FnLockSwitch byte = 1 << 4
)

const (
	RfkillClassDir = "/sys/class/rfkill"
	DmiProductPath = "/sys/class/dmi/id/product_name"
)
