package repository

import (
	"context"
	"fmt"
	"marketmap/internal/domain"
	"strings"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	SummarizeMovers(ctx context.Context, gainers, losers []domain.Aggregate) (string, error)
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

const summaryPrompt = `
You are writing a two or three sentence market summary for a dashboard. You
will be given today's top gainers and top losers with their percent changes.
Mention the standout movers by ticker and keep a neutral, factual tone. Do
not give investment advice.
`

func (h gptRepositoryHandler) SummarizeMovers(ctx context.Context, gainers, losers []domain.Aggregate) (string, error) {
	var sb strings.Builder
	sb.WriteString(summaryPrompt)
	sb.WriteString("\ngainers:\n")
	for _, a := range gainers {
		sb.WriteString(fmt.Sprintf("- %s %.2f%%\n", a.Code, a.Mean))
	}
	sb.WriteString("losers:\n")
	for _, a := range losers {
		sb.WriteString(fmt.Sprintf("- %s %.2f%%\n", a.Code, a.Mean))
	}

	response, err := h.GptClient.SimpleSend(ctx, sb.String())
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}
