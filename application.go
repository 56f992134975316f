package vlist

import (
	"sync"

	"github.com/gdamore/tcell/v3"
	"github.com/rs/zerolog"
)

// MouseAction is a logical mouse action derived from raw tcell mouse events.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseScrollUp
	MouseScrollDown
)

// mouseState turns the button and position snapshots reported by tcell into
// logical actions.
type mouseState struct {
	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
}

// actions returns the actions implied by event, in the order they happened.
// A release at the position of the matching press is also a click.
func (m *mouseState) actions(event *tcell.EventMouse) []MouseAction {
	x, y := event.Position()
	buttons := event.Buttons()

	var actions []MouseAction
	if x != m.x || y != m.y {
		actions = append(actions, MouseMove)
		m.x, m.y = x, y
	}

	pressed := buttons&tcell.ButtonPrimary != 0
	wasPressed := m.buttons&tcell.ButtonPrimary != 0
	switch {
	case pressed && !wasPressed:
		actions = append(actions, MouseLeftDown)
		m.downX, m.downY = x, y
	case !pressed && wasPressed:
		actions = append(actions, MouseLeftUp)
		if x == m.downX && y == m.downY {
			actions = append(actions, MouseLeftClick)
		}
	}

	if buttons&tcell.WheelUp != 0 {
		actions = append(actions, MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		actions = append(actions, MouseScrollDown)
	}
	m.buttons = buttons
	return actions
}

// Application runs a root primitive full screen. Key events go to the root
// while it has focus, mouse actions go to the root or to the primitive that
// captured the mouse, and the commands they return are executed in between.
//
//	if err := vlist.NewApplication().SetRoot(p).Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run returns early with the first error reported by a primitive, either
// through an [ErrorCommand] or through an Err method on the root.
type Application struct {
	sync.RWMutex

	// screen is nil before Run and after Stop.
	screen tcell.Screen
	root   Primitive
	focus  Primitive

	mouse       mouseState
	capture     Primitive
	enableMouse bool

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool

	// err is the failure that stopped the event loop, if any.
	err error

	logger zerolog.Logger
}

// errReporter is implemented by primitives that record failures which cannot
// be returned directly, such as those raised during layout.
type errReporter interface {
	Err() error
}

// NewApplication returns an application without a screen or root.
func NewApplication() *Application {
	return &Application{logger: zerolog.Nop()}
}

// SetLogger sets the logger used for event loop diagnostics.
func (a *Application) SetLogger(logger zerolog.Logger) *Application {
	a.Lock()
	defer a.Unlock()
	a.logger = logger
	return a
}

// EnableMouse turns on mouse reporting once the screen is set up.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enableMouse = enable
	return a
}

// SetScreen sets the screen Run draws on instead of the terminal. It has no
// effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// Run draws the root and handles events until [Application.Stop] is called
// or a primitive reports an error, which is then returned.
//
// While an application is running, it fully claims stdin, stdout and
// stderr.
func (a *Application) Run() error {
	a.Lock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err := screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	screen := a.screen
	if a.enableMouse {
		screen.EnableMouse()
	}
	a.Unlock()

	// Panics leave the terminal in raw mode unless the screen is finalized.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	for event := range screen.EventQ() {
		if event == nil || a.stopped() {
			break
		}
		a.handleEvent(event)
	}
	return a.Err()
}

// Err returns the error that stopped the application, if any.
func (a *Application) Err() error {
	a.RLock()
	defer a.RUnlock()
	return a.err
}

func (a *Application) stopped() bool {
	a.RLock()
	defer a.RUnlock()
	return a.screen == nil
}

// handleEvent dispatches one event and redraws when a command asks for it.
func (a *Application) handleEvent(event tcell.Event) {
	switch event := event.(type) {
	case *tcell.EventKey:
		a.RLock()
		root := a.root
		a.RUnlock()
		if root != nil && root.HasFocus() && a.executeCommand(root.InputHandler(event)) {
			a.draw()
		}
	case *tcell.EventMouse:
		redraw := false
		for _, action := range a.mouse.actions(event) {
			if a.fireMouseAction(action, event) {
				redraw = true
			}
		}
		if redraw {
			a.draw()
		}
	case *tcell.EventResize:
		a.Lock()
		// A resize may leave stale cells even when the size is unchanged.
		a.forceRedraw = true
		a.Unlock()
		a.draw()
	case *tcell.EventError:
		a.fail(event)
	}
}

// fireMouseAction sends action to the capturing primitive, or the root if
// the mouse is not captured, and executes the returned command.
func (a *Application) fireMouseAction(action MouseAction, event *tcell.EventMouse) bool {
	target := a.capture
	if target == nil {
		a.RLock()
		target = a.root
		a.RUnlock()
	}
	if target == nil {
		return false
	}
	capture, cmd := target.MouseHandler(action, event)
	a.capture = capture
	return a.executeCommand(cmd)
}

// fail records err as the reason the event loop stops and stops the
// application. Only the first error is kept.
func (a *Application) fail(err error) {
	a.Lock()
	if a.err == nil {
		a.err = err
	}
	logger := a.logger
	a.Unlock()
	logger.Error().Err(err).Msg("stopping application")
	a.Stop()
}

// Stop finalizes the screen, which makes Run return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// ForceDraw lays out and draws the root immediately. It must be called from
// the goroutine running the event loop, or before Run.
func (a *Application) ForceDraw() *Application {
	a.draw()
	return a
}

// draw lays the root out over the whole screen, stops the application if the
// layout failed and otherwise draws a frame.
func (a *Application) draw() {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if reporter, ok := root.(errReporter); ok {
		if err := reporter.Err(); err != nil {
			a.fail(err)
			return
		}
	}

	// tcell only emits changed cells on Show, so a full clear is reserved
	// for forced redraws.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot sets the primitive filling the screen and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	a.forceRedraw = true
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p, which may delegate the
// focus further.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		changed := a.GetFocus() != c.Target
		a.SetFocus(c.Target)
		return changed
	case ErrorCommand:
		if c.Err != nil {
			a.fail(c.Err)
		}
	}
	return false
}
