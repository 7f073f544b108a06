package universe

import (
	"sync"
	"time"

	"toruslife/src/bitset"
)

//Options represents the engine's configurable options
type Options struct {
	Width           uint32
	Height          uint32
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Parallel        bool
}

//Status represents the status of the simulation at a concrete moment
type Status struct {
	Generation  int
	RunningMode RunningState
	LiveCells   int
	StepTime    time.Duration
	Engine      string
}

//Frame is a consistent snapshot of the grid handed to viewers.
//Cells is a private clone: rendering never races the simulation loop.
type Frame struct {
	Width  uint32
	Height uint32
	Cells  *bitset.BitSet
}

//Viewer is the interface to any viewer - the object who can display
//simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e *Engine)
	Start()
}

//Template represents a named seeding pattern which can be used to settle
//the universe with predefined (row, col) coordinates
type Template struct {
	Name  string
	Descr string
	Cells [][2]uint32
}

//RunningState is the simulation running status at a concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//Engine drives a Universe through generations on demand or on a timer.
//All mutation requests are serialized through a single command channel;
//the Universe itself stays single-threaded.
type Engine struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	grid struct {
		u *Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	tick      func()
}

//NewEngine creates an Engine around a fresh all-dead universe sized per
//the options. Pass a nil Options to use DefaultOptions.
func NewEngine(o *Options, stateCh chan Status) *Engine {
	if o == nil {
		opts := DefaultOptions
		o = &opts
	}
	e := &Engine{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}

	u := New()
	//resizing resets the seed pattern to all-dead, which is what a
	//settle-driven engine wants even at the default dimensions
	u.SetWidth(e.options.Width)
	u.SetHeight(e.options.Height)
	e.grid.u = u

	e.state.Engine = "serial"
	e.tick = u.Tick
	if e.options.Parallel {
		e.state.Engine = "parallel"
		e.tick = u.TickParallel
	}

	e.refreshView()
	go e.mainLoop()
	return e
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by calling SettleTemplate
func (e *Engine) AddTemplate(tmpl Template) {
	e.templates[tmpl.Name] = tmpl
}

//Settle marks the listed (row, col) coordinates alive. Coordinates
//outside the grid are skipped.
func (e *Engine) Settle(cells [][2]uint32) {
	e.grid.Lock()
	e.settle(cells)
	e.grid.Unlock()
	e.refreshView()
}

//SettleTemplate populates the universe with the named seeding template
func (e *Engine) SettleTemplate(name string) {
	tmpl, ok := e.templates[name]
	if !ok {
		return
	}
	e.grid.Lock()
	e.settle(tmpl.Cells)
	live := e.grid.u.GetCells().Count()
	e.grid.Unlock()
	e.state.LiveCells = live
	e.refreshView()
}

//Randomize replaces the grid with random data using the universe's
//injected random source. Ignored while a simulation run is in flight.
func (e *Engine) Randomize() {
	if e.state.RunningMode == RunningStateManual || e.state.RunningMode == RunningStateFinished {
		e.controlCh <- e.clear
		e.controlCh <- func() {
			e.grid.Lock()
			e.grid.u.Random()
			live := e.grid.u.GetCells().Count()
			e.grid.Unlock()
			e.state.LiveCells = live
			e.refreshView()
		}
	}
}

//ToggleCell inverses the cell state at (row, col). Out-of-grid
//coordinates are ignored so raw pointer events can be forwarded as-is.
func (e *Engine) ToggleCell(row, col uint32) {
	e.grid.Lock()
	if row < e.grid.u.Height() && col < e.grid.u.Width() {
		e.grid.u.ToggleCell(row, col)
	}
	e.grid.Unlock()
	e.refreshView()
}

//StampGlider inserts a glider at (row, col). Stamps without enough
//margin from the grid edges are ignored.
func (e *Engine) StampGlider(row, col uint32) {
	e.stamp(row, col, 2, (*Universe).InsertGlider)
}

//StampPulsar inserts a pulsar at (row, col). Stamps without enough
//margin from the grid edges are ignored.
func (e *Engine) StampPulsar(row, col uint32) {
	e.stamp(row, col, 7, (*Universe).InsertPulsar)
}

func (e *Engine) stamp(row, col, margin uint32, insert func(*Universe, uint32, uint32)) {
	e.grid.Lock()
	u := e.grid.u
	if row >= margin && col >= margin && row+margin <= u.Height() && col+margin <= u.Width() {
		insert(u, row, col)
	}
	e.grid.Unlock()
	e.refreshView()
}

//RegisterViewer registers the viewer - the engine will call the viewer
//when the state is changed
func (e *Engine) RegisterViewer(v Viewer) {
	e.views = append(e.views, v)
	v.Register(e)
}

//StateCh returns the channel with the engine's status updates
func (e *Engine) StateCh() chan Status {
	return e.stateCh
}

//Status returns the current simulation status
func (e *Engine) Status() Status {
	return e.state.Status
}

//Options returns the current engine configuration
func (e *Engine) Options() Options {
	return e.options
}

//Frame returns a consistent snapshot of the grid for rendering
func (e *Engine) Frame() Frame {
	e.grid.Lock()
	defer e.grid.Unlock()
	return Frame{
		Width:  e.grid.u.Width(),
		Height: e.grid.u.Height(),
		Cells:  e.grid.u.GetCells().Clone(),
	}
}

//Run starts the simulation, returns immediately
func (e *Engine) Run() {
	e.controlCh <- e.run
}

//Stop stops the simulation, returns immediately
//the Status struct will be written to the stateCh on finish
func (e *Engine) Stop() {
	e.controlCh <- e.stop
}

//Step does one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (e *Engine) Step() {
	e.controlCh <- e.step
}

//Clear clears the universe (kill all cells and reset all counters),
//returns immediately
func (e *Engine) Clear() {
	e.controlCh <- e.clear
}

//Close stops the main loop, closes the channels, returns immediately
func (e *Engine) Close() {
	e.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for a command and executes it
func (e *Engine) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-e.controlCh:
			cmd()
		case c = <-e.closeCh:

		}
	}
	close(e.closeCh)
	close(e.controlCh)
}

//settle marks cells alive, skipping coordinates outside the grid
func (e *Engine) settle(cells [][2]uint32) {
	u := e.grid.u
	for _, c := range cells {
		if c[0] >= u.Height() || c[1] >= u.Width() {
			continue
		}
		u.SetCells([][2]uint32{c})
	}
}

//switchRunningState switches the state of the engine to RunningState
//also writes the new state to the stateCh to signal upper control software
func (e *Engine) switchRunningState(to RunningState) {
	e.state.Lock()
	e.state.RunningMode = to
	st := e.state.Status
	e.state.Unlock()
	if e.stateCh != nil {
		e.stateCh <- st
	}
}

//run starts the simulation cycle
//the cycle stops on Stop() or when the boundary conditions are reached
func (e *Engine) run() {
	go func() {
		e.switchRunningState(RunningStateRun)
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := e.state.RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > e.options.MaxSkippedTicks {
				e.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the engine is still busy calculating
			if mode != RunningStateStep {
				skipped = 0
				e.controlCh <- func() {
					e.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if e.options.Interval > 0 {
				time.Sleep(e.options.Interval)
			}
		}
	}()
}

//stop stops the running cycle
func (e *Engine) stop() {
	if e.state.RunningMode == RunningStateRun {
		e.switchRunningState(RunningStateManual)
	}
}

//step computes the next generation for the entire universe
func (e *Engine) step() {
	finished := false
	rm := e.state.RunningMode
	maxSteps := e.options.MaxSteps
	e.state.Generation++
	defer func() {
		if finished {
			e.switchRunningState(RunningStateFinished)
		} else {
			e.switchRunningState(rm)
		}
		e.refreshView()
	}()

	if maxSteps != 0 && e.state.Generation >= maxSteps {
		finished = true
		return
	}
	e.switchRunningState(RunningStateStep)
	alive, changed := e.nextGeneration()
	if !alive || !changed {
		finished = true
	}
}

//nextGeneration runs one tick and reports whether anything is still
//alive and whether the grid changed; a dead or static universe ends the
//simulation
func (e *Engine) nextGeneration() (hasLiveCells bool, changed bool) {
	e.grid.Lock()
	defer e.grid.Unlock()
	start := time.Now()
	prev := e.grid.u.GetCells().Clone()
	e.tick()
	cur := e.grid.u.GetCells()
	live := cur.Count()
	e.state.LiveCells = live
	e.state.StepTime = time.Since(start)
	return live > 0, !cur.Equal(prev)
}

//clear clears the universe data, resets all counters
func (e *Engine) clear() {
	e.state.Lock()
	e.grid.Lock()
	e.state.Generation = 0
	e.state.LiveCells = 0
	e.grid.u.Clear()
	e.state.RunningMode = RunningStateManual
	e.grid.Unlock()
	e.state.Unlock()
	e.switchRunningState(RunningStateManual)
	e.refreshView()
}

//refreshView calls the Refresh event for all registered views
func (e *Engine) refreshView() {
	for _, v := range e.views {
		v.Refresh()
	}
}
