package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"deck-assist/internal/models"

	"go.uber.org/zap"
)

// maxContextChunks is the fixed retrieval depth. No minimum-similarity
// threshold is applied: the best four chunks are always returned, and
// callers should treat low-similarity results as weak evidence.
const maxContextChunks = 4

type chunkEmbedding struct {
	chunk  models.KnowledgeChunk
	vector []float64
}

// RetrievalService embeds the knowledge base once per process and
// scores chunks against each query by cosine similarity. Indexing is
// all-or-nothing: a failed embedding call caches nothing and the next
// request retries from scratch.
type RetrievalService struct {
	client    *InferenceClient
	knowledge *KnowledgeService
	logger    *zap.Logger

	mu      sync.Mutex
	entries []chunkEmbedding
}

func NewRetrievalService(client *InferenceClient, knowledge *KnowledgeService, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		client:    client,
		knowledge: knowledge,
		logger:    logger,
	}
}

// FindRelevantChunks embeds the question together with the active
// slide's markdown and returns the top chunks by descending similarity,
// ties broken by original chunk order.
func (s *RetrievalService) FindRelevantChunks(ctx context.Context, query, slideMarkdown string) ([]models.KnowledgeChunk, error) {
	entries, err := s.chunkEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	vectors, err := s.client.Embed(ctx, []string{query + "\n\n" + slideMarkdown})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding response contained no vector for the query")
	}
	queryVector := vectors[0]

	type scoredChunk struct {
		chunk models.KnowledgeChunk
		score float64
	}
	scored := make([]scoredChunk, len(entries))
	for i, entry := range entries {
		scored[i] = scoredChunk{
			chunk: entry.chunk,
			score: cosineSimilarity(queryVector, entry.vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := maxContextChunks
	if len(scored) < limit {
		limit = len(scored)
	}
	result := make([]models.KnowledgeChunk, limit)
	for i := 0; i < limit; i++ {
		result[i] = scored[i].chunk
	}
	return result, nil
}

// chunkEmbeddings returns the cached chunk vectors, indexing the whole
// knowledge base on first use. The mutex serializes initialization so
// concurrent first queries trigger a single bulk embedding call; once
// populated the cache is read-only for the process lifetime.
func (s *RetrievalService) chunkEmbeddings(ctx context.Context) ([]chunkEmbedding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries != nil {
		return s.entries, nil
	}

	chunks := s.knowledge.GetKnowledgeChunks()
	inputs := make([]string, len(chunks))
	for i, chunk := range chunks {
		inputs[i] = chunk.Content
	}

	vectors, err := s.client.Embed(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding response returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	entries := make([]chunkEmbedding, len(chunks))
	for i, chunk := range chunks {
		entries[i] = chunkEmbedding{chunk: chunk, vector: vectors[i]}
	}
	s.entries = entries

	s.logger.Info("Knowledge base embedded", zap.Int("chunks", len(entries)))
	return entries, nil
}

// cosineSimilarity compares two vectors over their shared prefix when
// lengths differ and is defined as 0 when either has zero magnitude.
func cosineSimilarity(a, b []float64) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < length; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
