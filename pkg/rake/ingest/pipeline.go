package ingest

// Pipeline orchestrates candidate phrase extraction:
// text → normalization → sentence splitting → phrase segmentation
type Pipeline struct {
	segmenter *Segmenter
}

// NewPipeline creates an ingestion pipeline around a segmenter
func NewPipeline(segmenter *Segmenter) *Pipeline {
	return &Pipeline{segmenter: segmenter}
}

// Process runs text through the pipeline and returns its candidate phrases
func (p *Pipeline) Process(text string) []string {
	return p.segmenter.Segment(SplitSentences(Normalize(text)))
}
