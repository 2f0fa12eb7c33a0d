// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// DBToLinear converts a decibel offset to an amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// ApplyGain scales every sample of b in place by gainDB decibels. No
// clipping happens here; out of range samples are clamped on output.
func ApplyGain(b *Buffer, gainDB float64) {
	if gainDB == 0 {
		return
	}

	factor := float32(DBToLinear(gainDB))
	for i := range b.Samples {
		b.Samples[i] *= factor
	}
}
