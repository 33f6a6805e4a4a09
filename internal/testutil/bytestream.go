// Package testutil holds helpers shared by fuzz tests.
package testutil

import "strings"

// ByteStream reads bytes sequentially from a byte slice.
//
// Used by fuzz tests to deterministically derive catalogs and queries from
// fuzz input. When the stream is exhausted, all reads return zero values, so
// the same input always produces the same sequence of values.
type ByteStream struct {
	bytes []byte
	pos   int
}

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteStream) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextInt returns a non-negative int below maxVal derived from the next byte.
func (s *ByteStream) NextInt(maxVal int) int {
	if maxVal <= 0 {
		return 0
	}

	return int(s.NextByte()) % maxVal
}

// NextBool returns a boolean derived from the next byte.
func (s *ByteStream) NextBool() bool {
	return s.NextByte()&1 == 1
}

// NextTerm returns one of vocab, sometimes upper-cased or padded with spaces.
// Padded terms match nothing, since matching folds case but does not trim.
// Returns "" for an empty vocab.
func (s *ByteStream) NextTerm(vocab []string) string {
	if len(vocab) == 0 {
		return ""
	}

	term := vocab[s.NextInt(len(vocab))]

	switch s.NextInt(4) {
	case 1:
		term = strings.ToUpper(term)
	case 2:
		term = " " + term + " "
	}

	return term
}

// NextTerms returns up to maxN terms from vocab.
func (s *ByteStream) NextTerms(vocab []string, maxN int) []string {
	n := s.NextInt(maxN + 1)
	if n == 0 {
		return nil
	}

	out := make([]string, n)
	for i := range out {
		out[i] = s.NextTerm(vocab)
	}

	return out
}
