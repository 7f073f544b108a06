package universe

import (
	"testing"
	"time"
)

func newTestOptions(parallel bool) *Options {
	o := DefaultOptions
	o.Width = 12
	o.Height = 12
	o.Interval = 0
	o.Parallel = parallel
	return &o
}

func waitForState(t *testing.T, stateCh chan Status, want RunningState) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == want {
				return st
			}
		case <-timeout:
			t.Fatalf("timed out waiting for running state %v", want)
		}
	}
}

func TestEngineStartsAllDead(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()
	f := e.Frame()
	if f.Width != 12 || f.Height != 12 {
		t.Fatalf("frame dimensions = %dx%d, want 12x12", f.Width, f.Height)
	}
	if got := f.Cells.Count(); got != 0 {
		t.Fatalf("fresh engine has %d live cells, want 0", got)
	}
}

func TestEngineStillLifeRunFinishes(t *testing.T) {
	stateCh := make(chan Status, 10)
	e := NewEngine(newTestOptions(false), stateCh)
	//a 2x2 block never changes, so the run must end after one step
	e.Settle([][2]uint32{{1, 1}, {1, 2}, {2, 1}, {2, 2}})

	e.Run()
	st := waitForState(t, stateCh, RunningStateFinished)
	if st.LiveCells != 4 {
		t.Fatalf("finished with %d live cells, want 4", st.LiveCells)
	}
	e.Close()
	close(stateCh)
}

func TestEngineStepReportsGeneration(t *testing.T) {
	stateCh := make(chan Status, 10)
	e := NewEngine(newTestOptions(true), stateCh)
	//blinker keeps changing, so a single step stays in manual mode
	e.Settle([][2]uint32{{5, 4}, {5, 5}, {5, 6}})

	e.Step()
	st := waitForState(t, stateCh, RunningStateManual)
	if st.Generation != 1 {
		t.Fatalf("generation after one step = %d, want 1", st.Generation)
	}
	if st.LiveCells != 3 {
		t.Fatalf("blinker should still have 3 live cells, got %d", st.LiveCells)
	}
	e.Close()
	close(stateCh)
}

func TestEngineClearResetsCounters(t *testing.T) {
	stateCh := make(chan Status, 10)
	e := NewEngine(newTestOptions(false), stateCh)
	e.Settle([][2]uint32{{5, 4}, {5, 5}, {5, 6}})
	e.Step()
	waitForState(t, stateCh, RunningStateManual)

	e.Clear()
	st := waitForState(t, stateCh, RunningStateManual)
	if st.Generation != 0 || st.LiveCells != 0 {
		t.Fatalf("after clear: generation=%d liveCells=%d, want 0/0", st.Generation, st.LiveCells)
	}
	if got := e.Frame().Cells.Count(); got != 0 {
		t.Fatalf("%d live cells survived clear", got)
	}
	e.Close()
	close(stateCh)
}

func TestEngineToggleCell(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()

	e.ToggleCell(2, 3)
	f := e.Frame()
	if !f.Cells.Test(int(2*f.Width + 3)) {
		t.Fatal("toggled cell should be alive")
	}
	//raw pointer events outside the grid are dropped, not a fault
	e.ToggleCell(200, 200)
	if got := e.Frame().Cells.Count(); got != 1 {
		t.Fatalf("out-of-grid toggle changed the grid: %d live cells", got)
	}
}

func TestEngineStampsRespectMargins(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()

	e.StampGlider(0, 0) //too close to the edge, dropped
	if got := e.Frame().Cells.Count(); got != 0 {
		t.Fatalf("edge stamp should be ignored, got %d live cells", got)
	}

	e.StampGlider(6, 6)
	if got := e.Frame().Cells.Count(); got != 5 {
		t.Fatalf("glider stamp placed %d live cells, want 5", got)
	}

	e.StampPulsar(6, 6) //needs a 7-cell margin on a 12x12 grid, dropped
	if got := e.Frame().Cells.Count(); got != 5 {
		t.Fatalf("oversized pulsar stamp should be ignored, got %d live cells", got)
	}
}

func TestEngineSettleTemplate(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()

	e.AddTemplate(Template{
		Name:  "block",
		Descr: "2x2 still life",
		Cells: [][2]uint32{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {100, 100}}, //last one is out of grid
	})
	e.SettleTemplate("block")
	if got := e.Frame().Cells.Count(); got != 4 {
		t.Fatalf("template settled %d cells, want 4", got)
	}

	e.SettleTemplate("no-such-template")
	if got := e.Frame().Cells.Count(); got != 4 {
		t.Fatal("an unknown template name should be a no-op")
	}
}

func TestEngineRandomize(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()

	e.Randomize()
	//randomize runs asynchronously through the command loop
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if e.Frame().Cells.Count() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("randomize left a 12x12 grid entirely dead")
}

func TestEngineFrameIsASnapshot(t *testing.T) {
	e := NewEngine(newTestOptions(false), nil)
	defer e.Close()

	f := e.Frame()
	e.ToggleCell(1, 1)
	if f.Cells.Count() != 0 {
		t.Fatal("a frame must not observe later mutations")
	}
}
