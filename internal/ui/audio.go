package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundDrop SoundType = iota
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates the audio context and renders every sound.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audioContext(),
		enabled: true,
		volume:  0.5,
	}
	am.sounds = map[SoundType][]byte{
		SoundDrop:    synth(0.09, 0.35, click(520)),
		SoundInvalid: synth(0.1, 0.15, buzz(150)),
		SoundGameEnd: synth(0.45, 0.5, chord(261.63, 329.63, 392.00)),
	}
	return am
}

// audioContext returns the process-wide context; ebiten allows only one.
func audioContext() *audio.Context {
	if c := audio.CurrentContext(); c != nil {
		return c
	}
	return audio.NewContext(sampleRate)
}

// wave returns a sample in [-1, 1] at time t, progress in [0, 1).
type wave func(t, progress float64) float64

func click(freq float64) wave {
	return func(t, _ float64) float64 {
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30)
	}
}

func buzz(freq float64) wave {
	return func(t, progress float64) float64 {
		w := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return w * (1 - progress)
	}
}

func chord(freqs ...float64) wave {
	return func(t, progress float64) float64 {
		env := 1.0
		switch {
		case progress < 0.1:
			env = progress / 0.1
		case progress > 0.7:
			env = (1 - progress) / 0.3
		}
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * env
	}
}

// synth renders w as 16-bit little-endian stereo PCM.
func synth(duration, amplitude float64, w wave) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := math.Max(-1, math.Min(1, w(t, t/duration)*amplitude))
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// Play starts a sound; overlapping plays are allowed.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled turns sound on or off.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled reports whether sound is on.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
