// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/aiff"
	"github.com/ik5/audloop/formats/mp3"
	"github.com/ik5/audloop/formats/vorbis"
	"github.com/ik5/audloop/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder registered.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register(".wav", wav.Decoder{})
	reg.Register(".mp3", mp3.Decoder{})
	reg.Register(".ogg", vorbis.Decoder{})
	reg.Register(".oga", vorbis.Decoder{})
	reg.Register(".aiff", aiff.Decoder{})
	reg.Register(".aif", aiff.Decoder{})

	return reg
}
