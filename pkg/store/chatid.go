package store

// ChatID returns the canonical chat id for an unordered participant
// pair: the two ids sorted and joined. Both argument orders map to the
// same id, which is what makes chat creation idempotent.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}
