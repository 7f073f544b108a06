package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Parallel variant of the generation update.
	The linear cell index space is split into word-aligned chunks, each
	computed by its own goroutine into the shared next-generation buffer.
	Chunk boundaries land on 32-bit word boundaries so no two workers
	ever touch the same storage word.
*/

//TickParallel advances the universe by one generation using up to
//runtime.NumCPU() workers. The result is bit-identical to Tick: every
//worker reads the same frozen snapshot of the current generation.
func (u *Universe) TickParallel() {
	size := int(u.width * u.height)
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	//round the chunk up to a whole number of storage words
	chunk := (size + workers - 1) / workers
	chunk = (chunk + 31) &^ 31
	if chunk == 0 {
		chunk = 32
	}

	next := u.cells.Clone()
	var eg errgroup.Group
	for start := 0; start < size; start += chunk {
		start := start
		end := start + chunk
		if end > size {
			end = size
		}
		eg.Go(func() error {
			for idx := start; idx < end; idx++ {
				row := uint32(idx) / u.width
				col := uint32(idx) % u.width
				next.SetTo(idx, nextState(u.cells.Test(idx), u.liveNeighborCount(row, col)))
			}
			return nil
		})
	}
	//workers never return errors; Wait is only a join point
	_ = eg.Wait()
	u.cells = next
}
