package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
)

// maxEmbedInputChars is the practical input ceiling text is truncated to
// before encoding (spec C4).
const maxEmbedInputChars = 512

// defaultBatchSize is the default fan-out for concurrent embed requests.
const defaultBatchSize = 20

// EmbedderGateway is the C4 Embedder Gateway. It wraps a single
// driven.EmbeddingProvider with truncation, batched fan-out, order
// preservation, single-flight initialisation and output normalisation.
type EmbedderGateway struct {
	provider  driven.EmbeddingProvider
	batchSize int

	initOnce sync.Once
	initErr  error
}

// NewEmbedderGateway constructs a gateway over the given provider.
// batchSize <= 0 uses defaultBatchSize.
func NewEmbedderGateway(provider driven.EmbeddingProvider, batchSize int) *EmbedderGateway {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &EmbedderGateway{provider: provider, batchSize: batchSize}
}

// ensureInit performs single-flight Ping-based initialisation: concurrent
// first callers share one Ping and then return its result; later calls reuse
// the cached outcome.
func (g *EmbedderGateway) ensureInit(ctx context.Context) error {
	if g == nil || g.provider == nil {
		return domain.ErrEmbeddingUnavailable
	}
	g.initOnce.Do(func() {
		g.initErr = g.provider.Ping(ctx)
	})
	if g.initErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, g.initErr)
	}
	return nil
}

// Available reports whether the gateway has a provider configured. It does
// not Ping the provider; an unreachable provider still reports true here and
// fails on the first embedding call.
func (g *EmbedderGateway) Available() bool {
	return g != nil && g.provider != nil
}

// EmbedOne embeds a single piece of text.
func (g *EmbedderGateway) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := g.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedMany embeds a list of texts with a concurrent fan-out of at most
// batchSize requests, preserving input order in the output.
func (g *EmbedderGateway) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if err := g.ensureInit(ctx); err != nil {
		return nil, err
	}

	truncated := make([]string, len(texts))
	for i, t := range texts {
		truncated[i] = truncate(t, maxEmbedInputChars)
	}

	out := make([][]float32, len(truncated))
	errs := make([]error, len(truncated))

	sem := make(chan struct{}, g.batchSize)
	var wg sync.WaitGroup
	for i, t := range truncated {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t string) {
			defer wg.Done()
			defer func() { <-sem }()
			vec, err := g.provider.Embed(ctx, t)
			if err != nil {
				errs[i] = err
				return
			}
			out[i] = normalizeL2(vec)
		}(i, t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
		}
	}
	return out, nil
}

// Dimensions returns the provider's embedding width, or 0 if unavailable.
func (g *EmbedderGateway) Dimensions() int {
	if !g.Available() {
		return 0
	}
	return g.provider.Dimensions()
}

// ModelName returns the provider's model name, or "" if unavailable.
func (g *EmbedderGateway) ModelName() string {
	if !g.Available() {
		return ""
	}
	return g.provider.ModelName()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// normalizeL2 returns v scaled to unit L2 norm. If the provider already
// normalized the vector, this is a no-op within floating-point tolerance.
func normalizeL2(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
