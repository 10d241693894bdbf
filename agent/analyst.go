package agent

import (
	"context"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert in charge of the conversation. It can
// only answer through the other experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You facilitate the conversation and solve the user's request.

			The user asks about his own investment portfolio. The Analyst has
			direct access to the portfolio reports; ask it for any figure
			before answering. The Researcher can search for market news and
			facts about the instruments involved.

			Devise a plan of questions to the experts and come up with the
			best response. Never invent portfolio figures yourself.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the market research expert, grounded with search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `An expert on financial markets, institutions, funds and
		companies. Ask the Researcher whenever recent or grounding
		information is needed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets. Use Google Search to
			ground every assertion about companies, funds and prices, and
			relate the latest news to the user's request.
		`}}},
		},
	}
}

// NewAnalyst returns the portfolio analyst expert. Its tools read the
// user's actual reports; it never speculates about figures.
func NewAnalyst(tools []Function) *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `The portfolio analyst. It reads the user's transaction
		ledger and reports: current holdings, performance over several
		windows, realized and unrealized gains, external cash flows.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a portfolio analyst. Every figure you give comes from the
			report tools, never from memory. Reports are markdown; quote the
			relevant figures and keep the answer short.
		`}}},
		},
		Library: NewLibrary(tools),
	}
}

// Tool adapts a plain Go function into a callable Function with a flat
// string-typed parameter schema.
type Tool struct {
	Name        string
	Description string
	Params      map[string]string // parameter name to description
	Run         func(ctx context.Context, args map[string]any) (string, error)
}

// Declaration implements Function.
func (t *Tool) Declaration() *genai.FunctionDeclaration {
	properties := make(map[string]*genai.Schema, len(t.Params))
	for name, desc := range t.Params {
		properties[name] = &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.FunctionDeclaration{
		Name:        t.Name,
		Description: t.Description,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The report in markdown.",
		},
	}
}

// Call implements Function.
func (t *Tool) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{
		ID:       id,
		Name:     t.Name,
		Response: map[string]any{},
	}
	output, err := t.Run(ctx, args)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = output
	return fresp
}
