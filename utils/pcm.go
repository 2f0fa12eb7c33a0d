// SPDX-License-Identifier: EPL-2.0

package utils

// IntToFloat32 normalises a signed integer PCM sample of the given bit depth
// into [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	var scale float32
	switch bitDepth {
	case 8:
		scale = 128
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		scale = 32768
	}

	return float32(v) / scale
}

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping
// anything outside that range.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x)
	if x < 0 {
		return int16(x * 32768)
	}

	return int16(x * 32767)
}

// Clamp limits x to [-1, 1]. NaN becomes silence.
func Clamp(x float32) float32 {
	switch {
	case x != x:
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}

	return x
}
