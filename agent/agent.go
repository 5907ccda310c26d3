// Package agent runs a chat with Gemini experts about the user's accounts.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session. The user talks to
// the Facilitator, which delegates to the Experts through function calls.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print renders a reply. Defaults to writing the text as is.
	Print func(w io.Writer, text string)
}

// New creates an Agent reading the user from r and answering on w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Print:       func(w io.Writer, text string) { fmt.Fprintln(w, text) },
	}
}

// Start creates the chat sessions of the experts and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const (
	prompt = "assist> "
	bye    = "bye"
)

// Run is the read-eval-print loop of the session. The prompts are played
// first, as if typed by the user. It returns on "bye" or at the end of the
// input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if !a.Facilitator.started() {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.w, "Welcome to wallet assist. Type '%s' to exit.\n", bye)

	for {
		input, err := a.next(&prompts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch input {
		case "":
			continue
		case bye:
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, input)
		if err != nil {
			return err
		}
		a.Print(a.w, answer)
	}
}

// next prompts for the next input, consuming the pending prompts first.
func (a *Agent) next(prompts *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
