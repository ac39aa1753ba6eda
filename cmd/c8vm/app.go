package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices/display"
	"github.com/hexaflex/c8vm/devices/keypad"
)

// frameTime is the duration of a single 60 Hz frame. Timers tick and the
// instruction budget is consumed once per frame.
const frameTime = time.Second / 60

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	logger       *log.Logger     // Diagnostics sink.
	window       *glfw.Window    // OpenGL/GLFW context.
	ctrl         *Controller     // Interpreter session to be run.
	display      *display.Device // Virtual display peripheral.
	keypad       *keypad.Device  // Virtual keypad peripheral.
	titleUpdated time.Time       // Value used to periodically update the window title.
	frameCount   int             // Frames rendered since the last title update.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.logger = newLogger(config.Debug)
	a.display = display.New()
	a.keypad = keypad.New()
	a.ctrl = NewController(a.logger, a.printTrace)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occurred during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	a.logger.Info(Version())
	printHelp(a.logger)

	if err := a.loadProgram(); err != nil {
		return err
	}

	a.ctrl.Start()

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations for a single 60 Hz frame.
func (a *App) mainLoop() {
	start := time.Now()

	glfw.PollEvents()

	machine := a.ctrl.Machine()
	machine.SetKeys(a.keypad.Snapshot())

	if a.ctrl.Running() {
		machine.TickTimers()

		if err := a.ctrl.ExecuteFrame(a.config.Instructions); err != nil {
			a.logger.Error(err.Error())
		}
	}

	// Re-upload the bitmap only when the interpreter touched it.
	if machine.Display().Dirty() {
		a.display.Update(machine.Display().Pixels())
		machine.Display().ClearDirty()
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	a.display.Draw()
	a.window.SwapBuffers()
	a.frameCount++

	// Periodically update the window title to show runtime statistics.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		fps := float64(a.frameCount) / time.Since(a.titleUpdated).Seconds()
		freq := prettyFrequency(a.ctrl.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s - %.1f FPS", AppName, version, freq, fps))
		a.titleUpdated = time.Now()
		a.frameCount = 0
	}

	// Pace the loop to the 60 Hz frame clock.
	if d := frameTime - time.Since(start); d > 0 {
		time.Sleep(d)
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.display.Shutdown()

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	a.keypad.HandleKey(key, action)

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp(a.logger)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.ctrl.ToggleRun()
	case glfw.KeyF7:
		err = a.ctrl.Step()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		a.logger.Error(err.Error())
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return a.display.Startup()
}

// loadProgram loads the current program from disk and restarts the session.
func (a *App) loadProgram() error {
	a.logger.Info("loading program", log.String("path", a.config.Program))

	a.keypad.Reset()
	return a.ctrl.Load(a.config.Program)
}

// printTrace prints instruction trace data. This can be toggled
// on and off through a.config.PrintTrace.
func (a *App) printTrace(i *arch.Instruction) {
	if !a.config.PrintTrace {
		return
	}
	fmt.Printf("%04x %04x  %s\n", i.Addr, i.Word, i)
}

// printHelp writes a short overview of supported shortcut keys.
func printHelp(logger *log.Logger) {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the machine.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable debug trace output.")
	logger.Info(sb.String())
}

// newLogger creates the application logger.
func newLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}

// prettyFrequency returns a human-readable version of the given clock
// frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
