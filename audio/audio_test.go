// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audloop/internal/audiotest"
)

// stubDecoder hands out a fixed source, or fails with err.
type stubDecoder struct {
	src Source
	err error
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	if d.err != nil {
		return nil, d.err
	}

	return d.src, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	dec := &stubDecoder{}
	reg.Register("wav", dec)

	for _, ext := range []string{"wav", ".wav", ".WAV", " Wav "} {
		got, ok := reg.Get(ext)
		if !ok || got != dec {
			t.Errorf("Get(%q) = %v, %v; want registered decoder", ext, got, ok)
		}
	}

	if _, ok := reg.Get("mp3"); ok {
		t.Error("Get(mp3) ok = true for unregistered extension")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first, second := &stubDecoder{}, &stubDecoder{}
	reg.Register(".ogg", first)
	reg.Register("OGG", second)

	if got, _ := reg.Get("ogg"); got != second {
		t.Error("Register() did not replace the earlier decoder")
	}
	if got := reg.Formats(); len(got) != 1 {
		t.Errorf("Formats() = %v, want a single entry", got)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	dec := &stubDecoder{}
	reg.Register("mp3", dec)

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "sounds/loop.mp3"},
		{path: "/abs/LOOP.MP3"},
		{path: "loop.flac", wantErr: true},
		{path: "noextension", wantErr: true},
		{path: "dir.mp3/file", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := reg.Lookup(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Lookup() error = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil || got != dec {
				t.Errorf("Lookup() = %v, %v; want registered decoder", got, err)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if got := reg.Formats(); len(got) != 0 {
		t.Errorf("Formats() on empty registry = %v", got)
	}

	for _, ext := range []string{"wav", ".MP3", "ogg", "aiff"} {
		reg.Register(ext, &stubDecoder{})
	}

	want := []string{".aiff", ".mp3", ".ogg", ".wav"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	exts := []string{"wav", "mp3", "ogg", "aiff", "aif", "oga"}

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			ext := exts[i%len(exts)]
			reg.Register(ext, &stubDecoder{})
			_, _ = reg.Get(ext)
			_, _ = reg.Lookup("file." + ext)
			_ = reg.Formats()
		})
	}
	wg.Wait()

	if got := len(reg.Formats()); got != len(exts) {
		t.Errorf("len(Formats()) = %d, want %d", got, len(exts))
	}
}

func BenchmarkRegistry_Lookup(b *testing.B) {
	reg := NewRegistry()
	reg.Register("wav", &stubDecoder{src: audiotest.NewSilentSource(44100, 2, 1)})

	for b.Loop() {
		_, _ = reg.Lookup("drums/kick.wav")
	}
}
