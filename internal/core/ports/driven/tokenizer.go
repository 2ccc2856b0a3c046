package driven

// Tokenizer converts text to and from an ordered token sequence.
// The chunker windows over token IDs and decodes each window back to
// text independently.
type Tokenizer interface {
	// Encode converts text into token IDs.
	Encode(text string) []int

	// Decode converts token IDs back into text.
	Decode(tokens []int) string
}
