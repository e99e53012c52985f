// cannon - Terminal ballistics visualizer
// Fire projectiles and watch their tick-by-tick flight traces in your terminal.
//
// Controls:
//
//	Space       - Fire
//	Up/Down     - Raise/lower the launch angle
//	Left/Right  - Trim launch power
//	R           - Reset aim and clear traces
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/eatspaint/raybase/pkg/ballistics"
	"github.com/eatspaint/raybase/pkg/tuple"
)

var (
	launchPower = flag.Float64("power", 11.25, "Initial projectile speed (world units per tick)")
	launchAngle = flag.Float64("angle", 45, "Launch angle in degrees")
	gravityMag  = flag.Float64("gravity", 0.1, "Downward acceleration per tick")
	windMag     = flag.Float64("wind", -0.01, "Horizontal acceleration per tick (negative blows back)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "24,28,38", "Sky color (R,G,B)")
)

const (
	muzzleHeight   = 1.0 // launch height above the ground line
	maxFlightTicks = 5000
	maxShots       = 6
	groundPx       = 2   // grass thickness in pixel rows
	originX        = 2   // cannon position in pixel columns
	barrelPx       = 7.0 // barrel length in pixels

	minAngle, maxAngle = 5.0, 85.0
	minPower, maxPower = 1.0, 30.0

	trimAngleRate = 40.0 // degrees per second of held key
	trimPowerRate = 10.0 // power units per second of held key
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cannon - Terminal ballistics visualizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cannon [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space       - Fire\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Raise or lower the launch angle\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Trim launch power\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset aim and clear traces\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// AimAxis animates one launch parameter toward its clamped target with
// spring physics, so key taps read as smooth gun-laying rather than jumps.
type AimAxis struct {
	Target   float64
	lo, hi   float64
	pos, vel float64
	spring   harmonica.Spring
}

func NewAimAxis(fps int, start, lo, hi float64) AimAxis {
	return AimAxis{
		Target: start,
		lo:     lo,
		hi:     hi,
		pos:    start,
		// Damping 1.0 is critically damped: the barrel settles without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Nudge moves the target, clamped to the axis range.
func (a *AimAxis) Nudge(delta float64) {
	a.Target = math.Min(a.hi, math.Max(a.lo, a.Target+delta))
}

// Update advances the spring one frame and returns the smoothed value.
func (a *AimAxis) Update() float64 {
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.Target)
	return a.pos
}

// AimState is the cannon's current lay: angle above horizontal and muzzle
// power, both spring-smoothed.
type AimState struct {
	Angle AimAxis // degrees
	Power AimAxis // world units per tick
	fps   int

	angle0, power0 float64
}

func NewAimState(fps int, angle, power float64) *AimState {
	return &AimState{
		Angle:  NewAimAxis(fps, angle, minAngle, maxAngle),
		Power:  NewAimAxis(fps, power, minPower, maxPower),
		fps:    fps,
		angle0: angle,
		power0: power,
	}
}

func (s *AimState) Update() (angle, power float64) {
	return s.Angle.Update(), s.Power.Update()
}

func (s *AimState) Reset() {
	s.Angle = NewAimAxis(s.fps, s.angle0, minAngle, maxAngle)
	s.Power = NewAimAxis(s.fps, s.power0, minPower, maxPower)
}

// shot is one fired projectile: the whole tick trace precomputed at launch,
// revealed one tick per frame.
type shot struct {
	trace  []ballistics.Projectile
	shown  int
	rangeX float64 // X where the flight ended
	apex   float64 // highest Y reached
}

func (s *shot) done() bool { return s.shown >= len(s.trace) }

// fire launches a projectile from the muzzle and precomputes its flight.
func fire(env ballistics.Environment, angleDeg, power float64) shot {
	rad := angleDeg * math.Pi / 180
	p := ballistics.Projectile{
		Position: tuple.Point(0, muzzleHeight, 0),
		Velocity: tuple.Vector(math.Cos(rad), math.Sin(rad), 0).Scale(power),
	}

	trace := ballistics.Flight(env, p, maxFlightTicks)
	s := shot{trace: trace, shown: 1}
	s.rangeX = trace[len(trace)-1].Position.X
	for _, st := range trace {
		s.apex = math.Max(s.apex, st.Position.Y)
	}
	return s
}

// aimEstimate predicts range and apex for the current aim, ignoring wind.
// Per-tick kinematics: apex = h + vy²/2g, flight lasts about 2·vy/g ticks.
func aimEstimate(angleDeg, power, gravity float64) (rangeX, apex float64) {
	rad := angleDeg * math.Pi / 180
	vx := math.Cos(rad) * power
	vy := math.Sin(rad) * power
	if gravity <= 0 {
		return vx * maxFlightTicks, muzzleHeight + vy*maxFlightTicks
	}
	tf := 2 * vy / gravity
	return vx * tf, muzzleHeight + vy*vy/(2*gravity)
}

// fitTarget picks the pixels-per-world-unit scale that keeps every trace and
// the current aim's predicted flight inside the canvas.
func fitTarget(cv *canvas, shots []shot, estRange, estApex float64) float64 {
	maxX := math.Max(estRange, 10)
	maxY := math.Max(estApex, 5)
	for _, s := range shots {
		maxX = math.Max(maxX, s.rangeX)
		maxY = math.Max(maxY, s.apex)
	}

	usableW := float64(cv.width - 2*originX)
	usableH := float64(cv.height - groundPx - 2)
	return math.Min(usableW/(maxX*1.05), usableH/(maxY*1.1))
}

// toPixel maps a world position to canvas pixel coordinates. World X runs
// right from the cannon, world Y up from the ground line.
func toPixel(p tuple.Tuple, scale float64, cv *canvas) (int, int) {
	x := originX + int(math.Round(p.X*scale))
	y := cv.height - groundPx - 1 - int(math.Round(p.Y*scale))
	return x, y
}

func drawScene(cv *canvas, shots []shot, angleDeg, scale float64) {
	cv.clear(colorSky)
	cv.fillRows(cv.height-groundPx, cv.height, colorGround)

	// Barrel: a short line from the origin along the current aim.
	rad := angleDeg * math.Pi / 180
	x0, y0 := toPixel(tuple.Point(0, 0, 0), scale, cv)
	x1 := x0 + int(math.Round(barrelPx*math.Cos(rad)))
	y1 := y0 - int(math.Round(barrelPx*math.Sin(rad)))
	cv.drawLine(x0, y0, x1, y1, colorBarrel)

	for i := range shots {
		s := &shots[i]
		col := colorTrail
		if s.done() {
			col = colorLanded
		}

		px, py := toPixel(s.trace[0].Position, scale, cv)
		for j := 1; j < s.shown; j++ {
			qx, qy := toPixel(s.trace[j].Position, scale, cv)
			cv.drawLine(px, py, qx, qy, col)
			px, py = qx, qy
		}
		if !s.done() {
			cv.setPixel(px, py, colorShot)
		}
	}
}

// HUD draws the status overlay with raw ANSI, directly over the frame.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Status is the aim and flight info the HUD shows.
type Status struct {
	Power, Angle  float64
	Gravity, Wind float64
	Shots         int
	LastRange     float64
	LastApex      float64
	Landed        bool
	ShowHUD       bool
}

func (h *HUD) Render(width, height int, st Status) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !st.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: title
	title := " cannon "
	titleCol := max((width-len(title))/2, 1)
	fmt.Print(moveTo(1, titleCol) + bold + bgBlack + fgWhite + title + reset)

	// Top right: shot count
	shotsStr := fmt.Sprintf(" %d shots ", st.Shots)
	fmt.Print(moveTo(1, max(width-len(shotsStr), 1)) + bgBlack + fgCyan + shotsStr + reset)

	// Bottom left: current lay and environment
	fmt.Printf("%s%s%s power %.1f  angle %.1f°  gravity %.2f  wind %.3f %s",
		moveTo(height, 1), bgBlack, fgWhite, st.Power, st.Angle, st.Gravity, st.Wind, reset)

	// Bottom right: last landing, or the key hint until something lands
	var right string
	if st.Landed {
		right = fmt.Sprintf("%s%s range %.1f  apex %.1f %s", bgBlack, fgYellow, st.LastRange, st.LastApex, reset)
	} else {
		right = fmt.Sprintf("%s%s%s space: fire  r: reset  esc: quit %s", bgBlack, dim, fgYellow, reset)
	}
	fmt.Print(moveTo(height, max(width-34, 1)) + right)
}

func run() error {
	// Parse sky color
	var bgR, bgG, bgB uint8 = 24, 28, 38
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	colorSky = rgb(bgR, bgG, bgB)

	env := ballistics.Environment{
		Gravity: tuple.Vector(0, -*gravityMag, 0),
		Wind:    tuple.Vector(*windMag, 0, 0),
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cv := newCanvas(width, height)
	aim := NewAimState(*targetFPS, *launchAngle, *launchPower)
	hud := NewHUD()

	var shots []shot
	showHUD := true

	// View scale spring: zooms out smoothly when a shot flies far.
	estRange, estApex := aimEstimate(aim.Angle.Target, aim.Power.Target, *gravityMag)
	view := NewAimAxis(*targetFPS, fitTarget(cv, nil, estRange, estApex), 0, math.MaxFloat64)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	trim := struct{ angle, power float64 }{}
	fireCh := make(chan struct{}, 4)
	clearCh := make(chan struct{}, 1)

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				cv = newCanvas(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("space"):
					select {
					case fireCh <- struct{}{}:
					default:
					}
				case ev.MatchString("up", "k"):
					trim.angle = trimAngleRate
				case ev.MatchString("down", "j"):
					trim.angle = -trimAngleRate
				case ev.MatchString("right", "l"):
					trim.power = trimPowerRate
				case ev.MatchString("left", "h"):
					trim.power = -trimPowerRate
				case ev.MatchString("r"):
					aim.Reset()
					select {
					case clearCh <- struct{}{}:
					default:
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					showHUD = !showHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("up"), ev.MatchString("k"), ev.MatchString("down"), ev.MatchString("j"):
					trim.angle = 0
				case ev.MatchString("left"), ev.MatchString("h"), ev.MatchString("right"), ev.MatchString("l"):
					trim.power = 0
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case <-fireCh:
			shots = append(shots, fire(env, aim.Angle.Target, aim.Power.Target))
			if len(shots) > maxShots {
				shots = shots[1:]
			}
		case <-clearCh:
			shots = nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply held-key trim and decay it (key release events unreliable)
		aim.Angle.Nudge(trim.angle * dt)
		aim.Power.Nudge(trim.power * dt)
		trim.angle *= 0.9
		trim.power *= 0.9

		// Update springs (harmonica handles timing internally)
		angle, power := aim.Update()

		// Reveal one more tick of every in-flight trace
		for i := range shots {
			if !shots[i].done() {
				shots[i].shown++
			}
		}

		// Re-fit the view to everything on screen
		estRange, estApex = aimEstimate(aim.Angle.Target, aim.Power.Target, *gravityMag)
		view.Target = fitTarget(cv, shots, estRange, estApex)
		scale := view.Update()

		// Render
		drawScene(cv, shots, angle, scale)
		cv.draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		info := Status{
			Power:   power,
			Angle:   angle,
			Gravity: *gravityMag,
			Wind:    *windMag,
			Shots:   len(shots),
			ShowHUD: showHUD,
		}
		for i := len(shots) - 1; i >= 0; i-- {
			if shots[i].done() {
				info.Landed = true
				info.LastRange = shots[i].rangeX
				info.LastApex = shots[i].apex
				break
			}
		}
		hud.Render(width, height, info)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
