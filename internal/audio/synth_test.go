package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func sampleAt(buf []byte, frame, ch int) float64 {
	off := frame*frameBytes + ch*4
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
}

func TestSynthesizeLengths(t *testing.T) {
	tests := []struct {
		cue     Cue
		seconds float64
	}{
		{CueEat, 0.1},
		{CueCorrect, 0.15},
		{CueWrong, 0.3},
		{CueVictory, 0.5},
		{CueCollision, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			buf := Synthesize(tt.cue)
			want := int(tt.seconds*SampleRate) * frameBytes
			if len(buf) != want {
				t.Errorf("len = %d, want %d", len(buf), want)
			}
		})
	}
}

func TestSynthesizeUnknown(t *testing.T) {
	if buf := Synthesize(Cue(42)); buf != nil {
		t.Errorf("unknown cue produced %d bytes", len(buf))
	}
}

func TestSynthesizeBoundedAndFaded(t *testing.T) {
	for c := range cueTones {
		buf := Synthesize(c)
		frames := len(buf) / frameBytes
		for i := range frames {
			l, r := sampleAt(buf, i, 0), sampleAt(buf, i, 1)
			if l != r {
				t.Fatalf("%s frame %d: channels differ", c, i)
			}
			if l < -1 || l > 1 {
				t.Fatalf("%s frame %d: sample %f out of range", c, i, l)
			}
		}
		if first := sampleAt(buf, 0, 0); first != 0 {
			t.Errorf("%s: first sample %f, want 0", c, first)
		}
		if last := sampleAt(buf, frames-1, 0); last != 0 {
			t.Errorf("%s: last sample %f, want 0", c, last)
		}
	}
}

func TestEnvelope(t *testing.T) {
	if got := envelope(0, 100, 10); got != 0 {
		t.Errorf("start = %f", got)
	}
	if got := envelope(50, 100, 10); got != 1 {
		t.Errorf("middle = %f", got)
	}
	if got := envelope(5, 100, 10); got != 0.5 {
		t.Errorf("ramp = %f", got)
	}
	if got := envelope(3, 100, 0); got != 1 {
		t.Errorf("no fade = %f", got)
	}
}

func TestNopPlay(t *testing.T) {
	var n Nop
	for _, c := range Cues {
		n.Play(c)
	}
}

func TestEveryCueHasSamples(t *testing.T) {
	for _, c := range Cues {
		if c.String() == "unknown" {
			t.Errorf("cue %d has no name", int(c))
		}
		if len(Synthesize(c)) == 0 {
			t.Errorf("cue %v synthesizes no samples", c)
		}
	}
}
