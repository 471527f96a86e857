package chord

// Model is the boundary to a learned chord-detection backend. The engine
// treats it as optional and opaque: any error, empty pitch list, or
// low-confidence result routes the buffer to the deterministic fallback
// instead. Implementations must be safe for repeated calls with buffers of
// varying length.
type Model interface {
	DetectChord(buffer []float64, sampleRate int) (Result, error)
}
