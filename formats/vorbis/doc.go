// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float32, so samples are passed through without
// conversion. Any channel count is reported as is; the audio package folds
// more than two channels to stereo.
//
//	f, _ := os.Open("ambience.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
