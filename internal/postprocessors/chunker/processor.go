// Package chunker splits document content into overlapping,
// sentence-boundary-respecting chunks.
package chunker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

var (
	threeOrMoreNewlines = regexp.MustCompile(`\n{3,}`)
	twoOrMoreNewlines   = regexp.MustCompile(`\n{2,}`)
	sentenceSplit       = regexp.MustCompile(`([.!?])\s+|\n{2,}`)
)

// Processor splits document content into chunks by greedily accumulating
// sentences up to chunkSize, seeding each new chunk with a trailing
// word-boundary overlap from the previous one.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks. Input chunks are
// ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	sentences := splitSentences(doc.Content)
	if len(sentences) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	var buf []string
	bufLen := 0

	emit := func() {
		if bufLen == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(buf, " "))
		if content == "" {
			return
		}
		idx := len(chunks)
		chunks = append(chunks, domain.Chunk{
			DocumentID: doc.ID,
			Content:    content,
			Source:     doc.Name,
			Type:       doc.Type,
			Title:      doc.Title,
			ChunkIndex: idx,
			CharStart:  idx * (p.chunkSize - p.overlap),
			CharEnd:    idx*(p.chunkSize-p.overlap) + len(content),
		})
	}

	for _, s := range sentences {
		sLen := len(s)
		if bufLen > 0 && bufLen+1+sLen > p.chunkSize {
			emit()
			buf = overlapWords(buf, p.overlap, p.chunkSize)
			bufLen = len(strings.Join(buf, " "))
		}
		buf = append(buf, s)
		bufLen = len(strings.Join(buf, " "))
	}
	emit()

	for i := range chunks {
		chunks[i].ID = fmt.Sprintf("%s-chunk-%d", doc.Name, chunks[i].ChunkIndex)
	}

	return chunks, nil
}

// splitSentences normalises line endings, collapses runs of blank lines,
// and splits on sentence-terminal punctuation or a blank-line run.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = threeOrMoreNewlines.ReplaceAllString(text, "\n\n")

	parts := splitKeepingTerminal(text)

	sentences := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// splitKeepingTerminal splits text on sentence-terminal punctuation
// followed by whitespace, or a run of >=2 newlines, without dropping the
// terminal punctuation from the preceding sentence.
func splitKeepingTerminal(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceSplit.FindAllStringIndex(text, -1) {
		matched := text[loc[0]:loc[1]]
		if twoOrMoreNewlines.MatchString(matched) && !strings.ContainsAny(matched, ".!?") {
			out = append(out, text[last:loc[0]])
		} else {
			out = append(out, text[last:loc[0]+1])
		}
		last = loc[1]
	}
	out = append(out, text[last:])
	return out
}

// overlapWords returns the trailing ceil((overlap/chunkSize)*wordCount)
// words of the just-emitted buffer, to seed the next buffer.
func overlapWords(buf []string, overlap, chunkSize int) []string {
	if overlap <= 0 || chunkSize <= 0 {
		return nil
	}
	joined := strings.Join(buf, " ")
	words := strings.Fields(joined)
	if len(words) == 0 {
		return nil
	}
	n := (overlap*len(words) + chunkSize - 1) / chunkSize
	if n <= 0 {
		return nil
	}
	if n > len(words) {
		n = len(words)
	}
	return []string{strings.Join(words[len(words)-n:], " ")}
}
