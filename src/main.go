package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"toruslife/src/universe"
	"toruslife/src/view"
)

var (
	//three stable patterns, (row, col)
	testSample = [][2]uint32{
		{1, 1}, {2, 1},
		{1, 2}, {2, 2},
		{3, 3},
		{2, 4},
		{3, 4},
		{3, 5},
	}

	//engine name to the parallel-tick flag
	engines = map[string]bool{
		"serial":   false,
		"parallel": true,
	}
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	engine      string
	optionsFile string
}

func main() {
	eo, uo := initOptions()

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel for getting the engine status
	}

	e := universe.NewEngine(uo, stateCh)

	e.AddTemplate(
		universe.Template{
			Name:  "testSample1",
			Descr: "the test sample with 3 stable patterns",
			Cells: testSample,
		})

	if eo.randomData {
		e.Randomize()
	} else {
		e.SettleTemplate("testSample1")
		if uo.Height >= 24 && uo.Width >= 24 {
			e.StampGlider(10, 16)
			e.StampPulsar(uo.Height/2, uo.Width/2)
		}
	}

	if eo.interactive {
		v := view.NewConsoleUI()
		e.RegisterViewer(v)
		v.Start()
		e.Close()
	} else {
		v := view.NewConsoleOut()
		e.RegisterViewer(v)
		v.Start()

		startTime := time.Now()
		e.Run()
		for {
			st := <-stateCh
			if st.RunningMode == universe.RunningStateFinished {
				totalTime := time.Since(startTime).Round(time.Millisecond)
				fmt.Printf("Finished, generation: %v, total running time: %v\n", st.Generation, totalTime)
				break
			}
		}
		e.Close()
		close(stateCh)
	}

}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	opts := universe.DefaultOptions
	uo = &opts
	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	eo = &EnvOptions{engine: "serial"}
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.UInt32(&uo.Width, "x", "width", "Width of the simulation field")
	flaggy.UInt32(&uo.Height, "y", "height", "Height of the simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) as a number with the 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.String(&eo.optionsFile, "f", "options", "Options file (YAML); takes precedence over -x/-y/-i/-s")

	flaggy.Parse()

	parallel, ok := engines[eo.engine]
	if !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}

	if eo.optionsFile != "" {
		loaded, err := universe.LoadOptions(eo.optionsFile)
		if err != nil {
			log.Fatal(err)
		}
		uo = loaded
	}
	uo.Parallel = parallel

	return
}
