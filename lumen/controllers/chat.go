package controllers

import (
	"context"

	"lumen/lumen/agents/core"
	"lumen/lumen/utils/types"
)

// Answerer is the part of the pipeline the chat endpoints need.
type Answerer interface {
	RunWithProgress(ctx context.Context, query string, progress core.ProgressFunc) (*core.PipelineResult, error)
}

type ChatController struct {
	pipeline Answerer
}

func NewChatController(p Answerer) *ChatController {
	return &ChatController{pipeline: p}
}

func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	res, err := c.pipeline.RunWithProgress(ctx, req.Message, nil)
	if err != nil {
		return nil, err
	}
	return toChatResponse(res), nil
}

// ChatStream runs the pipeline and reports each step through emit before
// the final result or error event.
func (c *ChatController) ChatStream(ctx context.Context, sessionID string, req types.ChatRequest, emit func(types.StreamEvent)) {
	res, err := c.pipeline.RunWithProgress(ctx, req.Message, func(step core.Step, detail string) {
		emit(types.StreamEvent{Type: "step", SessionID: sessionID, Step: string(step), Detail: detail})
	})
	if err != nil {
		emit(types.StreamEvent{Type: "error", SessionID: sessionID, Error: PublicError(err)})
		return
	}
	emit(types.StreamEvent{Type: "result", SessionID: sessionID, Payload: toChatResponse(res)})
}

func toChatResponse(res *core.PipelineResult) *types.ChatResponse {
	sources := make([]types.Source, 0, len(res.Sources))
	for _, s := range res.Sources {
		sources = append(sources, types.Source{Title: s.Title, URL: s.URL})
	}
	return &types.ChatResponse{
		Response:           res.Answer,
		Sources:            sources,
		SearchQueryUsed:    res.SearchQueryUsed,
		WebSearchPerformed: res.WebSearchPerformed,
	}
}
