package view

import (
	"fmt"
	"time"

	"toruslife/src/universe"
)

//ConsoleOut is the headless viewer: it prints progress and the final
//summary of a non-interactive simulation run.
type ConsoleOut struct {
	e         *universe.Engine
	startTime time.Time
}

func NewConsoleOut() *ConsoleOut {
	return &ConsoleOut{}
}

func (c *ConsoleOut) Refresh() {
	st := c.e.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		fmt.Println("\nFinished:")
		fmt.Printf("  Last generation: %v\n", st.Generation)
		fmt.Printf("  Total time: %v\n", totalTime)
		fmt.Printf("  Live cells: %v\n", st.LiveCells)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Generation%10 == 0 {
			fmt.Printf("  Generations done: %v\n", st.Generation)
		}
	}
}

func (c *ConsoleOut) Register(e *universe.Engine) {
	c.e = e
	o := c.e.Options()
	fmt.Println("Running configuration:")
	fmt.Printf("  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Printf("  Interval: %v\n", o.Interval)
	fmt.Printf("  Max iterations: %v steps\n", o.MaxSteps)
	fmt.Printf("  Engine: %v\n", c.e.Status().Engine)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Println("\nSimulation started...")
}
