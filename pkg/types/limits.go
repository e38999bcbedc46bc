package types

// Decoder limits. Counts and lengths read from the stream are checked
// against these before anything is allocated.

const (
	// DefaultMaxProperties bounds the entry count of a single set.
	DefaultMaxProperties = 65535

	// DefaultMaxVectorLen bounds the element count of a vector.
	DefaultMaxVectorLen = 1 << 20

	// DefaultMaxDictionaryEntries bounds the record count of a dictionary.
	DefaultMaxDictionaryEntries = 65535

	// DefaultMaxStringBytes bounds the byte length of one string or blob (16 MB).
	DefaultMaxStringBytes = 16 << 20

	// DefaultMaxStreamSize bounds the size of a whole property set stream (256 MB).
	DefaultMaxStreamSize = 256 << 20

	// StrictDivisor shrinks every default for StrictLimits.
	StrictDivisor = 64
)

// Limits defines constraints applied while decoding untrusted streams. A zero
// or negative field disables that check.
type Limits struct {
	// MaxProperties is the maximum number of entries in one property set.
	MaxProperties int

	// MaxVectorLen is the maximum element count of one vector value.
	MaxVectorLen int

	// MaxDictionaryEntries is the maximum record count of a dictionary.
	MaxDictionaryEntries int

	// MaxStringBytes is the maximum payload of one string or blob, in bytes.
	MaxStringBytes int

	// MaxStreamSize is the maximum size of a property set stream in bytes.
	MaxStreamSize int64
}

// DefaultLimits returns limits that accept every stream a real Office
// application writes.
func DefaultLimits() Limits {
	return Limits{
		MaxProperties:        DefaultMaxProperties,
		MaxVectorLen:         DefaultMaxVectorLen,
		MaxDictionaryEntries: DefaultMaxDictionaryEntries,
		MaxStringBytes:       DefaultMaxStringBytes,
		MaxStreamSize:        DefaultMaxStreamSize,
	}
}

// RelaxedLimits returns limits bounded only by the stream itself.
func RelaxedLimits() Limits {
	return Limits{
		MaxProperties:        1 << 30,
		MaxVectorLen:         1 << 30,
		MaxDictionaryEntries: 1 << 30,
		MaxStringBytes:       1 << 30,
		MaxStreamSize:        1 << 40,
	}
}

// StrictLimits returns conservative limits for constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxProperties:        DefaultMaxProperties / StrictDivisor,
		MaxVectorLen:         DefaultMaxVectorLen / StrictDivisor,
		MaxDictionaryEntries: DefaultMaxDictionaryEntries / StrictDivisor,
		MaxStringBytes:       DefaultMaxStringBytes / StrictDivisor,
		MaxStreamSize:        DefaultMaxStreamSize / StrictDivisor,
	}
}
