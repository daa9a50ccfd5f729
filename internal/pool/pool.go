// Package pool provides bucketed sync.Pool instances for coefficient
// buffers. Buffers are organized by transform block size so a 4x4 block
// never holds on to a 32x32 allocation.
package pool

import "sync"

// Size classes, in int16 values, one per transform size.
const (
	Size4x4   = 16
	Size8x8   = 64
	Size16x16 = 256
	Size32x32 = 1024
)

// bucketIndex returns the pool index for a given length, or -1 when the
// length is larger than any class.
func bucketIndex(length int) int {
	switch {
	case length <= Size4x4:
		return 0
	case length <= Size8x8:
		return 1
	case length <= Size16x16:
		return 2
	case length <= Size32x32:
		return 3
	default:
		return -1
	}
}

var sizes = [4]int{Size4x4, Size8x8, Size16x16, Size32x32}

var pools [4]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]int16, sz)
				return &b
			},
		}
	}
}

// GetInt16 returns a zeroed int16 slice of the requested length. The
// returned slice may have a larger capacity. The caller should call
// PutInt16 when done.
func GetInt16(length int) []int16 {
	idx := bucketIndex(length)
	if idx < 0 {
		return make([]int16, length)
	}
	bp := pools[idx].Get().(*[]int16)
	b := (*bp)[:length]
	clear(b)
	return b
}

// PutInt16 returns a slice obtained from GetInt16 to its pool. Slices whose
// capacity is not an exact size class are dropped.
func PutInt16(b []int16) {
	c := cap(b)
	idx := bucketIndex(c)
	if idx < 0 || sizes[idx] != c {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
