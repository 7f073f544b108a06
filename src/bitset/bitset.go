//Package bitset implements a fixed-size bit set backed by a slice of
//uint32 words, LSB-first within each word. It is the packed storage for
//the universe's cells: one bit per cell keeps large grids dense and
//makes whole-grid clearing and cloning cheap.
package bitset

import (
	"fmt"
	"math/bits"
)

const wordBits = 32

//BitSet is a fixed-size set of bits. The zero value is an empty set of
//size 0; use New for anything useful.
type BitSet struct {
	words []uint32
	size  int
}

//New creates a BitSet holding exactly size bits, all unset.
func New(size int) *BitSet {
	if size < 0 {
		panic(fmt.Sprintf("bitset: negative size %d", size))
	}
	return &BitSet{
		words: make([]uint32, (size+wordBits-1)/wordBits),
		size:  size,
	}
}

//Len returns the number of bits the set holds.
func (b *BitSet) Len() int {
	return b.size
}

func (b *BitSet) check(pos int) {
	if pos < 0 || pos >= b.size {
		panic(fmt.Sprintf("bitset: position %d out of range [0, %d)", pos, b.size))
	}
}

//Set sets the bit at pos to 1. Panics if pos is out of range.
func (b *BitSet) Set(pos int) {
	b.check(pos)
	b.words[pos/wordBits] |= 1 << uint(pos%wordBits)
}

//Unset resets the bit at pos to 0. Panics if pos is out of range.
func (b *BitSet) Unset(pos int) {
	b.check(pos)
	b.words[pos/wordBits] &^= 1 << uint(pos%wordBits)
}

//SetTo sets the bit at pos to the given value. Panics if pos is out of range.
func (b *BitSet) SetTo(pos int, value bool) {
	if value {
		b.Set(pos)
	} else {
		b.Unset(pos)
	}
}

//Toggle inverts the bit at pos. Panics if pos is out of range.
func (b *BitSet) Toggle(pos int) {
	b.check(pos)
	b.words[pos/wordBits] ^= 1 << uint(pos%wordBits)
}

//Test reports whether the bit at pos is set. Panics if pos is out of range.
func (b *BitSet) Test(pos int) bool {
	b.check(pos)
	return b.words[pos/wordBits]&(1<<uint(pos%wordBits)) != 0
}

//Count returns the number of set bits.
func (b *BitSet) Count() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount32(w)
	}
	return count
}

//ClearAll resets every bit to 0 without reallocating.
func (b *BitSet) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

//Clone returns an independent copy of the set.
func (b *BitSet) Clone() *BitSet {
	words := make([]uint32, len(b.words))
	copy(words, b.words)
	return &BitSet{words: words, size: b.size}
}

//Equal reports whether two sets have the same size and the same bits.
func (b *BitSet) Equal(other *BitSet) bool {
	if b.size != other.size {
		return false
	}
	for i, w := range b.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

//Words exposes the backing words for zero-copy rendering. The slice is
//valid until the next mutating call on the set; callers must not write
//through it.
func (b *BitSet) Words() []uint32 {
	return b.words
}
