package score

// Counter accumulates per-word frequency and co-occurrence degree over
// candidate phrases.
type Counter struct {
	N      int64            // phrases processed
	Freq   map[string]int64 // occurrences per word
	Degree map[string]int64 // sum of (phrase length - 1) per word
}

// NewCounter creates a new word counter
func NewCounter() *Counter {
	return &Counter{
		N:      0,
		Freq:   make(map[string]int64),
		Degree: make(map[string]int64),
	}
}

// AddPhrase updates counts for the words of one phrase occurrence
func (c *Counter) AddPhrase(words []string) {
	c.N++

	degree := int64(len(words) - 1)
	for _, w := range words {
		c.Freq[w]++
		c.Degree[w] += degree
	}
}

// GetFrequency returns how often a word occurred across all phrases
func (c *Counter) GetFrequency(w string) int64 {
	return c.Freq[w]
}

// GetDegree returns the co-occurrence degree of a word, self-occurrences
// excluded
func (c *Counter) GetDegree(w string) int64 {
	return c.Degree[w]
}

// Score returns (degree + frequency) / frequency for a word seen at least
// once. Words never seen have no score.
func (c *Counter) Score(w string) (float64, bool) {
	freq := c.Freq[w]
	if freq == 0 {
		return 0, false
	}
	return float64(c.Degree[w]+freq) / float64(freq), true
}

// Scores returns the score of every word seen
func (c *Counter) Scores() map[string]float64 {
	scores := make(map[string]float64, len(c.Freq))
	for w := range c.Freq {
		scores[w], _ = c.Score(w)
	}
	return scores
}

// TotalPhrases returns the number of phrase occurrences processed
func (c *Counter) TotalPhrases() int64 {
	return c.N
}

// UniqueWords returns the number of distinct words
func (c *Counter) UniqueWords() int {
	return len(c.Freq)
}
