package local

import "fmt"

// Tensor is an engine-neutral description of a model input
// engines keep the backing storage; Handle is opaque to this package
type Tensor struct {
	DType  DType
	Device Device
	Shape  []int
	Handle any
}

// To returns a copy of the tensor placed on device with the given dtype
func (t Tensor) To(device Device, dtype DType) Tensor {
	moved := t
	moved.Device = device
	moved.DType = dtype
	moved.Shape = append([]int(nil), t.Shape...)
	return moved
}

// Inputs are the named tensors produced by applying the chat template
type Inputs map[string]Tensor

// InputIDsKey names the token id tensor every processor must produce
const InputIDsKey = "input_ids"

// InputLen returns the prompt length, the last dimension of input_ids
func (in Inputs) InputLen() (int, error) {
	ids, ok := in[InputIDsKey]
	if !ok {
		return 0, fmt.Errorf("processor output has no %s tensor", InputIDsKey)
	}
	if len(ids.Shape) == 0 {
		return 0, fmt.Errorf("%s tensor has no shape", InputIDsKey)
	}
	return ids.Shape[len(ids.Shape)-1], nil
}

// MoveInputs places every tensor on device
// floating tensors are also cast to floatDType, other tensors keep their dtype
func MoveInputs(inputs Inputs, device Device, floatDType DType) Inputs {
	moved := make(Inputs, len(inputs))
	for name, tensor := range inputs {
		if tensor.DType.IsFloating() {
			moved[name] = tensor.To(device, floatDType)
		} else {
			moved[name] = tensor.To(device, tensor.DType)
		}
	}
	return moved
}
