package local

import (
	"fmt"
	"strings"
)

// Device is a compute device a model can be placed on
type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCUDA Device = "cuda"
	DeviceMPS  Device = "mps"
	DeviceCPU  Device = "cpu"
)

// DType is the element type of a tensor
type DType string

const (
	BFloat16 DType = "bfloat16"
	Float16  DType = "float16"
	Float32  DType = "float32"
	Int64    DType = "int64"
	Int32    DType = "int32"
	Bool     DType = "bool"
)

// IsFloating reports whether the dtype holds floating point values
func (d DType) IsFloating() bool {
	switch d {
	case BFloat16, Float16, Float32:
		return true
	}
	return false
}

// ParseDevice validates a device name from flags or configuration
func ParseDevice(name string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DeviceAuto, nil
	case DeviceAuto, DeviceCUDA, DeviceMPS, DeviceCPU:
		return d, nil
	default:
		return "", fmt.Errorf("unknown device %q (expected auto, cuda, mps or cpu)", name)
	}
}

// ResolveDevice picks the concrete device for a run
// auto prefers cuda, then mps, then cpu; an explicit accelerator must be available
func ResolveDevice(requested Device, available func(Device) bool) (Device, error) {
	if requested == "" || requested == DeviceAuto {
		for _, candidate := range []Device{DeviceCUDA, DeviceMPS} {
			if available(candidate) {
				return candidate, nil
			}
		}
		return DeviceCPU, nil
	}

	if requested == DeviceCPU || available(requested) {
		return requested, nil
	}
	return "", fmt.Errorf("device %q is not available", requested)
}

// DTypeFor returns the floating point dtype used on a device
// accelerators run in reduced precision, the cpu in full precision
func DTypeFor(device Device) DType {
	switch device {
	case DeviceCUDA:
		return BFloat16
	case DeviceMPS:
		return Float16
	default:
		return Float32
	}
}
