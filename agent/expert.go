package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Expert is a single specialized conversation with the model, optionally
// given a library of callable functions to get its answers from.
type Expert struct {
	Name, Description string
	Instructions      string
	Model             string
	Tools             []*genai.Tool
	Library           *Library
	chat              *genai.Chat
}

// Start creates the chat session for this expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	model := e.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: e.Instructions}}},
		Tools:             e.Tools,
	}
	if e.Library != nil {
		config.Tools = append(config.Tools, &genai.Tool{FunctionDeclarations: e.Library.Declarations()})
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return fmt.Errorf("cannot create chat session for %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and resolves function calls against its
// library until the model settles on a text answer.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	in := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		in = append(in, *p)
	}
	res, err := e.chat.SendMessage(ctx, in...)
	if err != nil {
		return nil, fmt.Errorf("expert %s cannot answer: %w", e.Name, err)
	}

	for len(res.FunctionCalls()) > 0 {
		replies := make([]genai.Part, 0)
		for _, call := range res.FunctionCalls() {
			log.Printf("expert %s calls %s", e.Name, call.Name)
			result, err := e.Library.Call(ctx, call)
			if err != nil {
				result = map[string]any{"error": err.Error()}
			}
			replies = append(replies, genai.Part{FunctionResponse: &genai.FunctionResponse{
				Name:     call.Name,
				Response: result,
			}})
		}
		res, err = e.chat.SendMessage(ctx, replies...)
		if err != nil {
			return nil, fmt.Errorf("expert %s cannot conclude: %w", e.Name, err)
		}
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, fmt.Errorf("expert %s returned no content", e.Name)
	}
	return res.Candidates[0].Content, nil
}
