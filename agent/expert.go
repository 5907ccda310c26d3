package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// MaxToolRounds bounds the function call exchanges of a single question.
const MaxToolRounds = 8

// ErrTooManyCalls is returned when a model keeps calling functions instead of
// answering.
var ErrTooManyCalls = errors.New("too many function calls")

// sender is the part of a genai.Chat an Expert talks to.
type sender interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Expert is a chat session with a model specialised by its instruction. It
// answers questions, calling its tools as needed.
type Expert struct {
	Name        string
	Description string
	Model       string
	Instruction string
	Tools       *Toolbox
	Logger      *zap.Logger
	chat        sender
}

// Start opens the chat session of the expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: e.Instruction}}},
	}
	if decls := e.Tools.Declarations(); len(decls) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	chat, err := client.Chats.Create(ctx, e.Model, config, nil)
	if err != nil {
		return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

func (e *Expert) started() bool { return e.chat != nil }

func (e *Expert) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Ask sends the question and returns the text of the answer. The function
// calls of the model are resolved with the expert's tools, all the calls of a
// turn answered together, for at most MaxToolRounds turns.
func (e *Expert) Ask(ctx context.Context, question string) (string, error) {
	if !e.started() {
		return "", fmt.Errorf("expert %s is not started", e.Name)
	}
	parts := []*genai.Part{{Text: question}}
	for round := 0; round <= MaxToolRounds; round++ {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("expert %s: %w", e.Name, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no response from expert %s", e.Name)
		}

		var text strings.Builder
		var replies []*genai.Part
		for _, p := range resp.Candidates[0].Content.Parts {
			switch {
			case p.FunctionCall != nil:
				e.logger().Debug("function call", zap.String("expert", e.Name), zap.String("function", p.FunctionCall.Name), zap.Int("round", round))
				replies = append(replies, &genai.Part{FunctionResponse: e.Tools.Call(ctx, p.FunctionCall)})
			case !p.Thought:
				text.WriteString(p.Text)
			}
		}
		if len(replies) == 0 {
			return text.String(), nil
		}
		parts = replies // the chat keeps the parts it was sent
	}
	return "", fmt.Errorf("expert %s: %w", e.Name, ErrTooManyCalls)
}

// Tool lets another model ask questions to this expert.
func (e *Expert) Tool() Tool {
	return Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        e.Name,
			Description: e.Description,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question": {
						Type:        genai.TypeString,
						Description: "The question to ask the expert.",
					},
				},
				Required: []string{"question"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Expert's response.",
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			question, ok := args["question"].(string)
			if !ok {
				return "", fmt.Errorf("argument 'question' is not a string as expected but %T", args["question"])
			}
			answer, err := e.Ask(ctx, question)
			if err != nil {
				return "", err
			}
			e.logger().Debug("expert answered", zap.String("expert", e.Name), zap.String("question", question), zap.String("answer", answer))
			return answer, nil
		},
	}
}
