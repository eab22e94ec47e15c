package local

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableOnly(devices ...Device) func(Device) bool {
	return func(d Device) bool {
		for _, candidate := range devices {
			if candidate == d {
				return true
			}
		}
		return false
	}
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		input   string
		want    Device
		wantErr bool
	}{
		{input: "", want: DeviceAuto},
		{input: "auto", want: DeviceAuto},
		{input: "CUDA", want: DeviceCUDA},
		{input: " mps ", want: DeviceMPS},
		{input: "cpu", want: DeviceCPU},
		{input: "tpu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDevice(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown device")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDevice(t *testing.T) {
	tests := []struct {
		name      string
		requested Device
		available []Device
		want      Device
		wantErr   bool
	}{
		{name: "auto prefers cuda", requested: DeviceAuto, available: []Device{DeviceCUDA, DeviceMPS}, want: DeviceCUDA},
		{name: "auto falls back to mps", requested: DeviceAuto, available: []Device{DeviceMPS}, want: DeviceMPS},
		{name: "auto falls back to cpu", requested: DeviceAuto, want: DeviceCPU},
		{name: "empty behaves like auto", requested: "", available: []Device{DeviceCUDA}, want: DeviceCUDA},
		{name: "explicit cpu always works", requested: DeviceCPU, available: []Device{DeviceCUDA}, want: DeviceCPU},
		{name: "explicit accelerator available", requested: DeviceMPS, available: []Device{DeviceMPS}, want: DeviceMPS},
		{name: "explicit accelerator missing", requested: DeviceCUDA, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDevice(tt.requested, availableOnly(tt.available...))
			if tt.wantErr {
				assert.ErrorContains(t, err, "not available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDTypeFor(t *testing.T) {
	assert.Equal(t, BFloat16, DTypeFor(DeviceCUDA))
	assert.Equal(t, Float16, DTypeFor(DeviceMPS))
	assert.Equal(t, Float32, DTypeFor(DeviceCPU))
}

func TestDType_IsFloating(t *testing.T) {
	assert.True(t, BFloat16.IsFloating())
	assert.True(t, Float16.IsFloating())
	assert.True(t, Float32.IsFloating())
	assert.False(t, Int64.IsFloating())
	assert.False(t, Int32.IsFloating())
	assert.False(t, Bool.IsFloating())
}
