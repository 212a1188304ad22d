package mathsnake

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/math-snake/internal/core"
)

// Summary describes a finished round for the end screen.
type Summary struct {
	Expression string
	Answer     string // Signed answer
	Collected  string // Digits eaten, in order
	Cause      Cause
	Ticks      int
}

type effectMode int

const (
	effectNone effectMode = iota
	effectDeath
	effectVictory
	effectWinScreen
	effectLoseScreen
)

const (
	deathParticles  = 100
	burstParticles  = 40
	deathGravity    = 0.05
	fireworkGravity = 0.02
	launchEvery     = 15
	drag            = 0.98
)

var (
	deathColors    = []core.Color{core.ColorRed, core.ColorBrightRed, core.ColorOrange, core.ColorYellow}
	fireworkColors = []core.Color{
		core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow,
		core.ColorBrightBlue, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorGold,
	}
)

type particle struct {
	x, y    float64
	vx, vy  float64
	life    int
	maxLife int
	color   core.Color
	rocket  bool // Bursts into a shower at the top of its arc
}

// Effects is the terminal AnimationHost: a particle burst on death,
// fireworks on victory and boxed end screens.
type Effects struct {
	rng       *rand.Rand
	duration  int
	area      core.Rect
	mode      effectMode
	frame     int
	particles []particle
	summary   Summary
}

// NewEffects creates an animation host whose animations last duration frames.
func NewEffects(rng *rand.Rand, duration int) *Effects {
	return &Effects{rng: rng, duration: duration}
}

// SetArea sets the screen region particles live in.
func (e *Effects) SetArea(r core.Rect) {
	e.area = r
}

// PlayDeathAnimation starts a particle burst centered on (x, y).
func (e *Effects) PlayDeathAnimation(x, y int) {
	e.start(effectDeath)
	for range deathParticles {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := 0.3 + e.rng.Float64()*1.2
		life := e.duration/3 + e.rng.Intn(e.duration/2+1)
		e.particles = append(e.particles, particle{
			x:       float64(x),
			y:       float64(y),
			vx:      math.Cos(angle) * speed * 2, // Cells are twice as tall as wide
			vy:      math.Sin(angle)*speed - 0.5,
			life:    life,
			maxLife: life,
			color:   deathColors[e.rng.Intn(len(deathColors))],
		})
	}
}

// PlayVictoryAnimation starts a fireworks show over the whole area.
func (e *Effects) PlayVictoryAnimation() {
	e.start(effectVictory)
	e.launch()
}

// ShowWinScreen shows the victory screen until the next Play call.
func (e *Effects) ShowWinScreen(s Summary) {
	e.start(effectWinScreen)
	e.summary = s
}

// ShowLoseScreen shows the game over screen until the next Play call.
func (e *Effects) ShowLoseScreen(s Summary) {
	e.start(effectLoseScreen)
	e.summary = s
}

func (e *Effects) start(m effectMode) {
	e.mode = m
	e.frame = 0
	e.particles = e.particles[:0]
}

// Running reports whether an animation is in progress.
func (e *Effects) Running() bool {
	return (e.mode == effectDeath || e.mode == effectVictory) && e.frame < e.duration
}

// Step advances the current animation by one frame.
func (e *Effects) Step() bool {
	if !e.Running() {
		return false
	}
	e.frame++

	gravity := deathGravity
	if e.mode == effectVictory {
		gravity = fireworkGravity
		if e.frame%launchEvery == 0 && e.frame < e.duration-launchEvery {
			e.launch()
		}
	}

	alive := e.particles[:0]
	var bursts []particle
	for _, p := range e.particles {
		p.x += p.vx
		p.y += p.vy
		p.vy += gravity
		p.vx *= drag
		p.life--
		if p.rocket && p.vy >= 0 {
			bursts = append(bursts, p)
			continue
		}
		if p.life > 0 {
			alive = append(alive, p)
		}
	}
	e.particles = alive
	for _, r := range bursts {
		e.burst(r.x, r.y, r.color)
	}

	return e.Running()
}

// launch sends a rocket up from the bottom of the area.
func (e *Effects) launch() {
	if e.area.W <= 0 || e.area.H <= 0 {
		return
	}
	x := float64(e.area.X + e.rng.Intn(e.area.W))
	y := float64(e.area.Bottom())
	// Apex lands in the upper half of the area: h = v^2 / 2g.
	rise := float64(e.area.H) * (0.5 + e.rng.Float64()*0.4)
	vy := -math.Sqrt(2 * fireworkGravity * rise)
	e.particles = append(e.particles, particle{
		x:       x,
		y:       y,
		vy:      vy,
		life:    e.duration,
		maxLife: e.duration,
		color:   fireworkColors[e.rng.Intn(len(fireworkColors))],
		rocket:  true,
	})
}

func (e *Effects) burst(x, y float64, c core.Color) {
	for range burstParticles {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := 0.2 + e.rng.Float64()*0.6
		life := 20 + e.rng.Intn(25)
		e.particles = append(e.particles, particle{
			x:       x,
			y:       y,
			vx:      math.Cos(angle) * speed * 2,
			vy:      math.Sin(angle) * speed,
			life:    life,
			maxLife: life,
			color:   c,
		})
	}
}

// ParticleCount returns the number of live particles.
func (e *Effects) ParticleCount() int {
	return len(e.particles)
}

// Draw renders the current effect.
func (e *Effects) Draw(dst *core.Screen) {
	switch e.mode {
	case effectDeath, effectVictory:
		for _, p := range e.particles {
			x, y := int(math.Round(p.x)), int(math.Round(p.y))
			if !e.area.Contains(x, y) {
				continue
			}
			dst.SetColor(x, y, particleGlyph(p), p.color)
		}
	case effectWinScreen:
		e.drawEndScreen(dst, "CORRECT!", core.ColorBrightGreen, []string{
			fmt.Sprintf("%s = %s", e.summary.Expression, e.summary.Answer),
			fmt.Sprintf("Solved in %d moves", e.summary.Ticks),
		})
	case effectLoseScreen:
		collected := e.summary.Collected
		if collected == "" {
			collected = "nothing"
		}
		e.drawEndScreen(dst, "GAME OVER", core.ColorBrightRed, []string{
			e.summary.Cause.Message(),
			fmt.Sprintf("%s = %s", e.summary.Expression, e.summary.Answer),
			"You collected: " + collected,
		})
	}
}

func particleGlyph(p particle) rune {
	if p.rocket {
		return '|'
	}
	frac := float64(p.life) / float64(max(p.maxLife, 1))
	switch {
	case frac > 0.6:
		return '*'
	case frac > 0.3:
		return '+'
	default:
		return '.'
	}
}

func (e *Effects) drawEndScreen(dst *core.Screen, title string, c core.Color, lines []string) {
	hint := "R/B: menu  Q: quit"
	width := max(len(title), len(hint))
	for _, l := range lines {
		width = max(width, len(l))
	}
	boxW := width + 4
	boxH := len(lines) + 6
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawBox(box, c)
	dst.DrawTextColor(box.X+(boxW-len(title))/2, box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawTextColor(box.X+(boxW-len(l))/2, box.Y+3+i, l, core.ColorWhite)
	}
	dst.DrawTextColor(box.X+(boxW-len(hint))/2, box.Bottom()-2, hint, core.ColorGray)
}
