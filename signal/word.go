// Package signal defines the wire-level data types shared by the decoupler
// and its test harness: fixed-width data words and per-tick signal samples.
package signal

import (
	"fmt"
	"math/rand"
	"strings"
)

const limbBits = 64

// A Word is an opaque fixed-width bit vector. The decoupler never inspects
// word content; words are only copied and compared. Words are immutable after
// construction, so copying a Word by value is always safe.
type Word struct {
	width int
	limbs []uint64
}

// Zero returns the all-zero word of the given width. Width must be at least 1.
func Zero(width int) Word {
	widthMustBeValid(width)

	return Word{
		width: width,
		limbs: make([]uint64, numLimbs(width)),
	}
}

// FromUint64 returns a word of the given width holding the low `width` bits
// of v. Bits beyond the width are discarded.
func FromUint64(width int, v uint64) Word {
	w := Zero(width)
	w.limbs[0] = v & lowLimbMask(width)
	w.mask()

	return w
}

// FromLimbs returns a word of the given width built from 64-bit limbs, least
// significant limb first. Missing limbs are zero; excess bits are discarded.
func FromLimbs(width int, limbs []uint64) Word {
	w := Zero(width)
	copy(w.limbs, limbs)
	w.mask()

	return w
}

// Random returns a uniformly random word of the given width drawn from rng.
func Random(width int, rng *rand.Rand) Word {
	w := Zero(width)
	for i := range w.limbs {
		w.limbs[i] = rng.Uint64()
	}
	w.mask()

	return w
}

// Width returns the bit width of the word. A zero-value Word has width 0 and
// represents "no word"; constructed words always have width >= 1.
func (w Word) Width() int {
	return w.width
}

// Uint64 returns the low 64 bits of the word.
func (w Word) Uint64() uint64 {
	if len(w.limbs) == 0 {
		return 0
	}

	return w.limbs[0]
}

// Equal reports whether two words have the same width and the same bits.
func (w Word) Equal(o Word) bool {
	if w.width != o.width {
		return false
	}

	for i := range w.limbs {
		if w.limbs[i] != o.limbs[i] {
			return false
		}
	}

	return true
}

// IsZero reports whether every bit of the word is zero.
func (w Word) IsZero() bool {
	for _, l := range w.limbs {
		if l != 0 {
			return false
		}
	}

	return true
}

// String renders the word as a fixed-width hexadecimal literal.
func (w Word) String() string {
	if w.width == 0 {
		return "0x0"
	}

	var sb strings.Builder
	for i := len(w.limbs) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%016x", w.limbs[i])
	}

	digits := (w.width + 3) / 4
	hex := sb.String()

	return "0x" + hex[len(hex)-digits:]
}

func (w Word) mask() {
	if len(w.limbs) == 0 {
		return
	}

	w.limbs[len(w.limbs)-1] &= topLimbMask(w.width)
}

func numLimbs(width int) int {
	return (width + limbBits - 1) / limbBits
}

func topLimbMask(width int) uint64 {
	rem := width % limbBits
	if rem == 0 {
		return ^uint64(0)
	}

	return (uint64(1) << rem) - 1
}

func lowLimbMask(width int) uint64 {
	if width >= limbBits {
		return ^uint64(0)
	}

	return (uint64(1) << width) - 1
}

func widthMustBeValid(width int) {
	if width < 1 {
		panic(fmt.Sprintf("word width must be at least 1, got %d", width))
	}
}
