package hardware

import (
	"qc71-service/internal/types"
)

// DetectModelVariant derives the model variant from the DMI product name.
// Returns ModelUnknown if the sysfs attribute is missing or the product
// is not a known family.
func DetectModelVariant() types.ModelVariant {
	return DetectModelVariantAt(DmiProductPath)
}

func DetectModelVariantAt(path string) types.ModelVariant {
	name, err := readSysfsValue(path)
	if err != nil {
		return types.ModelUnknown
	}
	return types.ParseModelVariant(name)
}
