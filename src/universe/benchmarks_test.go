package universe

import (
	"math/rand"
	"sort"
	"testing"
)

const (
	benchWidth  = 200
	benchHeight = 200
)

var benchEngines = map[string]func(*Universe){
	"serial":   (*Universe).Tick,
	"parallel": (*Universe).TickParallel,
}

func benchEngineNames() (names []string) {
	names = make([]string, 0, len(benchEngines))
	for k := range benchEngines {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

func newBenchUniverse() *Universe {
	u := New()
	u.SetWidth(benchWidth)
	u.SetHeight(benchHeight)
	r := rand.New(rand.NewSource(1))
	u.SetRandSource(r.Float64)
	u.Random()
	return u
}

func Benchmark_Tick(b *testing.B) {
	for _, name := range benchEngineNames() {
		tick := benchEngines[name]
		b.Run(name, func(b *testing.B) {
			u := newBenchUniverse()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tick(u)
			}
		})
	}
}

func Benchmark_LiveNeighborCount(b *testing.B) {
	u := newBenchUniverse()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.liveNeighborCount(benchHeight/2, benchWidth/2)
	}
}

func Benchmark_Random(b *testing.B) {
	u := newBenchUniverse()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Random()
	}
}
