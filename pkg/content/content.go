// Package content generates the synthetic files served by smallfs.
package content

// Greeting is the content of the greeting file.
const Greeting = "Hello World!\n"

// PatternSize is the size of both pattern files.
const PatternSize = 100000000

var greeting = []byte(Greeting)

// ReadGreeting copies the window of the greeting starting at off into
// buf and returns the number of bytes copied.
func ReadGreeting(buf []byte, off int64) int {
	return readWindow(greeting, buf, off)
}

// PatternByte returns the pattern byte at absolute offset j.
func PatternByte(j int64) byte {
	if j%27 == 0 {
		return '\n'
	}
	return byte('a' + j%26)
}

// ReadPattern fills buf with the pattern starting at absolute offset
// off, stopping at PatternSize, and returns the number of bytes
// produced.
func ReadPattern(buf []byte, off int64) int {
	if off < 0 || off >= PatternSize {
		return 0
	}

	n := len(buf)
	if rest := PatternSize - off; int64(n) > rest {
		n = int(rest)
	}
	for i := 0; i < n; i++ {
		buf[i] = PatternByte(off + int64(i))
	}
	return n
}

// readWindow copies src[off:] into buf, clipped to the end of src.
func readWindow(src, buf []byte, off int64) int {
	if off < 0 || off >= int64(len(src)) {
		return 0
	}
	return copy(buf, src[off:])
}
