package registry

import "strconv"

// Level is an error_reporting bitmask: the OR of zero or more constant values.
type Level uint64

// Has reports whether every bit of mask is set in l.
func (l Level) Has(mask Level) bool { return l&mask == mask }

// Set returns l with the bits of mask added.
func (l Level) Set(mask Level) Level { return l | mask }

// Clear returns l with the bits of mask removed.
func (l Level) Clear(mask Level) Level { return l &^ mask }

// SubmaskOf reports whether l only uses bits that are set in mask.
func (l Level) SubmaskOf(mask Level) bool { return l&^mask == 0 }

func (l Level) String() string {
	return strconv.FormatUint(uint64(l), 10)
}

func isPowerOfTwo(v Level) bool {
	return v != 0 && v&(v-1) == 0
}
