// Package agent implements the interactive AI assistant behind `fv assist`.
// A facilitator model routes the user's questions to experts; the analyst
// expert answers from the portfolio reports through function calls.
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

// Agent runs the chat session: it owns the facilitator, the expert roster,
// and a queue of scripted prompts consumed before live input.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	queue       []string
	facilitator *Expert
	experts     []*Expert
}

// New creates an Agent writing to w and reading user input from r.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		experts:     experts,
		facilitator: newFacilitator(experts...),
	}
}

// start opens the chat sessions for the facilitator and every expert.
func (a *Agent) start(ctx context.Context, client *genai.Client) error {
	for _, e := range append([]*Expert{a.facilitator}, a.experts...) {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

const prompt = "assist> "

// readLine returns the next non-empty input line, draining the scripted
// queue before the live reader. io.EOF means the session is over.
func (a *Agent) readLine() (string, error) {
	for len(a.queue) > 0 {
		line := strings.TrimSpace(a.queue[0])
		a.queue = a.queue[1:]
		if line != "" {
			fmt.Fprintln(a.w, line) // echo, as if typed
			return line, nil
		}
	}
	line, err := a.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Run starts the interactive REPL session. Initial prompts are consumed
// before reading from the user; 'bye' or Ctrl+D ends the session.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.facilitator.chat == nil {
		if err := a.start(ctx, client); err != nil {
			return err
		}
	}
	a.queue = append(a.queue, prompts...)

	fmt.Fprintln(a.w, "Welcome to fv assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		content, err := a.facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
