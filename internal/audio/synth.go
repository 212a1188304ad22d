package audio

import (
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 4 * ChannelCount // float32 per channel
	fadeSeconds  = 0.01
)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

type tone struct {
	freqs    []float64
	duration float64 // seconds
}

var cueTones = map[Cue]tone{
	CueEat:       {freqs: []float64{800}, duration: 0.1},
	CueCorrect:   {freqs: []float64{noteC5, noteE5, noteG5}, duration: 0.15},
	CueWrong:     {freqs: []float64{150}, duration: 0.3},
	CueVictory:   {freqs: []float64{noteC5, noteE5, noteG5, noteC6}, duration: 0.5},
	CueCollision: {freqs: []float64{120, 800}, duration: 0.15},
}

// Synthesize renders cue as interleaved float32 LE stereo PCM.
// Unknown cues yield nil.
func Synthesize(c Cue) []byte {
	t, ok := cueTones[c]
	if !ok {
		return nil
	}
	return renderChord(t.freqs, t.duration)
}

// renderChord sums equal-amplitude sines, normalized to stay within [-1, 1],
// with a short linear fade at both ends to avoid clicks.
func renderChord(freqs []float64, duration float64) []byte {
	n := int(duration * SampleRate)
	if n <= 0 || len(freqs) == 0 {
		return nil
	}
	fade := int(fadeSeconds * SampleRate)
	if fade*2 > n {
		fade = n / 2
	}

	buf := make([]byte, n*frameBytes)
	for i := range n {
		t := float64(i) / SampleRate
		var s float64
		for _, f := range freqs {
			s += math.Sin(2 * math.Pi * f * t)
		}
		s /= float64(len(freqs))
		s *= envelope(i, n, fade)
		putStereoF32(buf, i, s)
	}
	return buf
}

func envelope(i, n, fade int) float64 {
	switch {
	case fade == 0:
		return 1
	case i < fade:
		return float64(i) / float64(fade)
	case i >= n-fade:
		return float64(n-1-i) / float64(fade)
	default:
		return 1
	}
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := range ChannelCount {
		off := i*frameBytes + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}
