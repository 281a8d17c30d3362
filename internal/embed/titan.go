package embed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"newsvector/internal/logger"
)

// ErrEmbeddingProvider reports that the external embedding provider
// failed. It is never locally recovered: storing a record without its
// vectors would poison similarity search.
var ErrEmbeddingProvider = errors.New("embedding provider error")

const (
	// DefaultDim is the system-wide embedding dimension. Every vector in
	// the corpus must have this length; an index built for one dimension
	// rejects vectors of any other.
	DefaultDim = 1024

	contentTypeJSON = "application/json"
)

// TitanEmbedder generates text embeddings with an Amazon Titan model via
// the Bedrock runtime.
type TitanEmbedder struct {
	client    *bedrockruntime.Client
	modelID   string
	dim       int
	normalize bool
}

// NewTitanEmbedder wraps an existing Bedrock runtime client.
func NewTitanEmbedder(client *bedrockruntime.Client, modelID string, dim int) *TitanEmbedder {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &TitanEmbedder{
		client:    client,
		modelID:   modelID,
		dim:       dim,
		normalize: true,
	}
}

// NewTitanEmbedderFromRegion builds the Bedrock runtime client from the
// default AWS credential chain for the given region.
func NewTitanEmbedderFromRegion(ctx context.Context, region, modelID string, dim int) (*TitanEmbedder, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewTitanEmbedder(bedrockruntime.NewFromConfig(cfg), modelID, dim), nil
}

// titanRequest is the Titan embedding model's invocation payload.
type titanRequest struct {
	InputText  string `json:"inputText"`
	Dimensions int    `json:"dimensions"`
	Normalize  bool   `json:"normalize"`
}

// titanResponse is the model's response payload. Embedding is a pointer
// so a missing field is distinguishable from an empty vector.
type titanResponse struct {
	Embedding *[]float32 `json:"embedding"`
}

// EmbedQuery generates a fixed-dimension normalized embedding for text.
func (e *TitanEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	logger.Debug("Creating embedding for text of length %d", len(text))

	body, err := json.Marshal(titanRequest{
		InputText:  text,
		Dimensions: e.dim,
		Normalize:  e.normalize,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	out, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.modelID),
		Accept:      aws.String(contentTypeJSON),
		ContentType: aws.String(contentTypeJSON),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invoke model %s: %v", ErrEmbeddingProvider, e.modelID, err)
	}

	var resp titanResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrEmbeddingProvider, err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("%w: response missing embedding field", ErrEmbeddingProvider)
	}

	return *resp.Embedding, nil
}

// ModelID identifies the embedding model producing the vectors.
func (e *TitanEmbedder) ModelID() string {
	return e.modelID
}

// Dim returns the configured embedding dimension.
func (e *TitanEmbedder) Dim() int {
	return e.dim
}
