// +build noaudio

package main

func init() {
	features = append(features, "noaudio")
}

func newAlerter(rt runtimeConfig) alerter {
	return &noSounds{}
}
