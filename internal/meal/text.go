package meal

// Fold returns s with ASCII letters lowered and every other byte untouched.
//
// All case-insensitive matching in the catalog goes through Fold, both when
// the index is built and when a query is answered. Non-ASCII bytes are left
// as is, so "ÄPFEL" and "äpfel" do not match.
func Fold(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			return foldFrom(s, i)
		}
	}

	return s
}

func foldFrom(s string, start int) string {
	b := []byte(s)
	for i := start; i < len(b); i++ {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}

	return string(b)
}

// EqualFold reports whether a and b are equal under [Fold].
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether list has an element equal to needle under [Fold].
func ContainsFold(list []string, needle string) bool {
	n := Fold(needle)
	for _, s := range list {
		if Fold(s) == n {
			return true
		}
	}

	return false
}
