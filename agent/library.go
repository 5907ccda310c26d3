package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Tool is a function a model can call. Run returns the text handed back to
// the model, or an error it is told about.
type Tool struct {
	Decl *genai.FunctionDeclaration
	Run  func(ctx context.Context, args map[string]any) (string, error)
}

// Toolbox dispatches the function calls of a model to its tools by name.
// A nil Toolbox has no tools.
type Toolbox struct {
	tools  []Tool
	byName map[string]Tool
}

// NewToolbox returns a Toolbox declaring tools in the given order.
func NewToolbox(tools ...Tool) *Toolbox {
	b := &Toolbox{tools: tools, byName: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		b.byName[t.Decl.Name] = t
	}
	return b
}

// Declarations lists the declarations of the tools.
func (b *Toolbox) Declarations() []*genai.FunctionDeclaration {
	if b == nil {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(b.tools))
	for _, t := range b.tools {
		decls = append(decls, t.Decl)
	}
	return decls
}

// Call runs the tool named by call. Errors, including an unknown tool, are
// reported to the model in the response.
func (b *Toolbox) Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}
	var t Tool
	var ok bool
	if b != nil {
		t, ok = b.byName[call.Name]
	}
	if !ok {
		resp.Response = map[string]any{"error": fmt.Sprintf("unknown function %s", call.Name)}
		return resp
	}
	out, err := t.Run(ctx, call.Args)
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = map[string]any{"output": out}
	return resp
}
