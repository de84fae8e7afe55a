package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the question or text to find related knowledge for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Results []RetrieveResultOutput `json:"results"`
	Count   int                    `json:"count"`
	Context string                 `json:"context,omitempty"`
}

// RetrieveResultOutput represents a single matched chunk.
type RetrieveResultOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the knowledge base chunks most similar to a query",
	}, s.handleRetrieve)
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultRetrievalLimit
	}

	matches, err := s.ports.Retrieval.Retrieve(ctx, input.Query, limit)
	if err != nil {
		return nil, RetrieveOutput{}, toolError(err)
	}

	output := RetrieveOutput{
		Results: make([]RetrieveResultOutput, len(matches)),
		Count:   len(matches),
		Context: domain.BuildContext(matches),
	}

	for i := range matches {
		output.Results[i] = RetrieveResultOutput{
			ChunkID:    matches[i].Chunk.ID,
			DocumentID: matches[i].Chunk.DocumentID,
			Score:      matches[i].Score,
			Content:    matches[i].Chunk.Content,
		}
	}

	return nil, output, nil
}
