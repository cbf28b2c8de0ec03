// Command termview runs the swarm in a terminal. The mouse is the cursor;
// clicking pulses activation. Esc or q quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/swarm"
)

// World units per terminal cell. Cells are roughly twice as tall as wide.
const (
	cellW = 8
	cellH = 16
)

type view struct {
	screen tcell.Screen
	swarm  *swarm.Swarm
	cfg    *config.Config

	cursor       swarm.Cursor
	cursorActive bool
	paused       bool
	agents       []swarm.AgentView
	cols, rows   int
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML or TOML config overlay")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	agents := flag.Int("agents", 0, "Agent count (0 = use config)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := run(*configPath, *seed, *agents); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, agents int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if agents > 0 {
		cfg.Agent.Count = agents
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	v := &view{screen: screen, cfg: cfg}
	v.cols, v.rows = screen.Size()
	cfg.SetWorldSize(v.cols*cellW, v.rows*cellH)

	v.swarm, err = swarm.New(cfg, swarm.Options{Seed: seed})
	if err != nil {
		return err
	}
	defer v.swarm.Close()

	slog.Info("termview started", "cols", v.cols, "rows", v.rows, "agents", v.swarm.Count(), "seed", seed)
	v.loop()
	slog.Info("termview stopped", "ticks", v.swarm.Ticks())
	return nil
}

func (v *view) loop() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				var cursor *swarm.Cursor
				if v.cursorActive {
					c := v.cursor
					cursor = &c
				}
				v.swarm.Tick(cursor, nil)
			}
			v.draw()
		}
	}
}

// handleEvent returns false when the view should exit.
func (v *view) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 's':
				v.cfg.Signal.Enabled = !v.cfg.Signal.Enabled
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		v.cursor.X, v.cursor.Y = cellCenter(x, y)
		v.cursorActive = true
		if ev.Buttons()&tcell.Button1 != 0 {
			v.swarm.ActivateArea(v.cursor.X, v.cursor.Y, float32(v.cfg.Signal.CursorRadius))
		}

	case *tcell.EventResize:
		v.screen.Sync()
		cols, rows := v.screen.Size()
		if cols == v.cols && rows == v.rows {
			break
		}
		if err := v.swarm.Resize(float32(cols*cellW), float32(rows*cellH)); err != nil {
			slog.Error("resize failed", "error", err)
			break
		}
		v.cols, v.rows = cols, rows
	}
	return true
}

func (v *view) draw() {
	v.screen.Clear()
	v.agents = v.swarm.Agents(v.agents[:0])

	for i := range v.agents {
		a := &v.agents[i]
		col, row := cellOf(a.Pos.X, a.Pos.Y)
		if col < 0 || col >= v.cols || row < 0 || row >= v.rows {
			continue
		}
		v.screen.SetContent(col, row, glyph(a.Activation), nil, styleFor(a.Activation))
	}

	status := fmt.Sprintf(" tick %d | agents %d | edges %d | signal %v | space pause, s signal, q quit ",
		v.swarm.Ticks(), v.swarm.Count(), len(v.swarm.Edges()), v.cfg.Signal.Enabled)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for i, r := range status {
		if i >= v.cols {
			break
		}
		v.screen.SetContent(i, v.rows-1, r, nil, statusStyle)
	}

	v.screen.Show()
}

// cellOf maps a world position to a terminal cell.
func cellOf(x, y float32) (col, row int) {
	return int(x / cellW), int(y / cellH)
}

// cellCenter maps a terminal cell to the world position at its center.
func cellCenter(col, row int) (x, y float32) {
	return (float32(col) + 0.5) * cellW, (float32(row) + 0.5) * cellH
}

// glyph picks a denser rune for higher activation.
func glyph(activation float32) rune {
	switch {
	case activation >= 0.75:
		return '◉'
	case activation >= 0.5:
		return '●'
	case activation >= 0.1:
		return '•'
	default:
		return '·'
	}
}

// styleFor blends from blue at rest toward warm white when activated.
func styleFor(activation float32) tcell.Style {
	a := max(0, min(1, activation))
	r := int32(90 + a*165)
	g := int32(140 + a*90)
	b := int32(210 - a*40)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
}
