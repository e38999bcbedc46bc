package format

// Pad4 returns the number of bytes needed to advance n to the next 4-byte
// boundary.
//
//	Pad4(0) = 0
//	Pad4(5) = 3
//	Pad4(6) = 2
func Pad4(n int) int {
	return (Alignment - n%Alignment) % Alignment
}
