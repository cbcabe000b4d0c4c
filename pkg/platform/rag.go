package platform

import (
	"context"
	"strings"
)

const defaultEmbeddingModel = "amazon.titan-embed-text-v1"

// RAG indexes data sources for retrieval.
type RAG struct{ c *Client }

// Index starts indexing dataSource with embeddingModel, or the default
// Titan model when none is given.
func (r *RAG) Index(ctx context.Context, dataSource, embeddingModel string) (Response[RAGIndex], error) {
	if strings.TrimSpace(dataSource) == "" {
		return Response[RAGIndex]{}, invalid("data source is required")
	}
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}
	return invoke(ctx, r.c, "rag.index", func() (RAGIndex, error) {
		return RAGIndex{
			ID:             r.c.newID("idx"),
			DataSource:     dataSource,
			EmbeddingModel: embeddingModel,
			Status:         StatusIndexing,
			CreatedAt:      r.c.now(),
		}, nil
	})
}
