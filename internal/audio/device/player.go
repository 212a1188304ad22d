// Package device plays audio cues on the local sound card through oto.
// It is kept apart from package audio because oto needs cgo and the
// platform audio headers.
package device

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/math-snake/internal/audio"
)

// Player plays cues on the local audio device.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	sounds map[audio.Cue][]byte
	logger *log.Logger
}

// NewPlayer opens the audio device. Cues are synthesized once up front.
func NewPlayer(volume float64, logger *log.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}

	sounds := make(map[audio.Cue][]byte, len(audio.Cues))
	for _, c := range audio.Cues {
		sounds[c] = audio.Synthesize(c)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		ctx:    ctx,
		ready:  ready,
		volume: volume,
		sounds: sounds,
		logger: logger,
	}, nil
}

// Play starts c in the background and returns immediately.
// Cues requested before the device is ready are dropped.
func (p *Player) Play(c audio.Cue) {
	select {
	case <-p.ready:
	default:
		return
	}
	samples := p.sounds[c]
	if len(samples) == 0 {
		return
	}

	go p.play(c, samples)
}

func (p *Player) play(c audio.Cue, samples []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("audio playback panicked", "cue", c, "panic", r)
		}
	}()

	player := p.ctx.NewPlayer(bytes.NewReader(samples))
	player.SetVolume(p.volume)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Err(); err != nil {
		p.logger.Debug("audio playback failed", "cue", c, "err", err)
	}
	if err := player.Close(); err != nil {
		p.logger.Debug("audio player close", "cue", c, "err", err)
	}
}
