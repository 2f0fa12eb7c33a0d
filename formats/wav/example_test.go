// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/wav"
)

// Example_encodeAndDecode writes a buffer to disk and reads it back.
func Example_encodeAndDecode() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	f, err := os.Create(filepath.Join(dir, "out.wav"))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	buf := &audio.Buffer{Samples: []float32{0.5, -0.5, 0.25, -0.25}, Channels: 2, SampleRate: 22050}
	if err := wav.Encode(f, buf); err != nil {
		fmt.Println(err)
		return
	}

	if _, err := f.Seek(0, 0); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}

	decoded, err := audio.ReadAll(src)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %d frames\n", decoded.SampleRate, decoded.Channels, decoded.Frames())
	// Output:
	// 22050 Hz, 2 channels, 2 frames
}
