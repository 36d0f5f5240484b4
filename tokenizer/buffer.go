package tokenizer

// buffer is a growable byte buffer used as tokenizer scratch storage,
// mirroring original_source's struct str (bytes/length/capacity, str_add
// doubling capacity). Go's append already doubles for us; this just gives
// the scratch pools a reset/empty vocabulary matching spec.md §4.5.
type buffer struct {
	b []byte
}

func (s *buffer) reset() {
	s.b = s.b[:0]
}

func (s *buffer) addByte(c byte) {
	s.b = append(s.b, c)
}

func (s *buffer) String() string {
	return string(s.b)
}

func (s *buffer) empty() bool {
	return len(s.b) == 0
}
