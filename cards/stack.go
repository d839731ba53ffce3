package cards

// Stack represents multiple cards
type Stack []Card

// Contains reports whether the stack holds the card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Tokens returns the evaluator tokens of every card in order
func (s Stack) Tokens() []string {
	tokens := make([]string, len(s))
	for i, c := range s {
		tokens[i] = c.Token()
	}
	return tokens
}

// Clone returns an independent copy of the stack
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
