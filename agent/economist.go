package agent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/nmoretto/indexa"
	"github.com/nmoretto/indexa/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his recurring payment obligations, what they
			cost him over time once inflation is accounted for, and what the coming months look like.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist returns the expert in charge of the user's obligation data.
// Every tool it can call goes through the engine.
func NewEconomist(e *indexa.Engine) *Expert {
	lib := []Function{
		resolveRateFunc(e),
		convertFunc(e),
		analyzeFunc(e),
		projectFunc(e),
	}

	return &Expert{
		Name: "Economist",
		Description: `This is the Economist. He is in charge of the user's payment records:
		exchange rates, inflation history, expense analysis and obligation projections.
		Ask the Economist whenever a question needs actual figures from the user's data.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an economist in charge of the user's payment records in an
				inflationary two-currency economy (Argentine pesos with USD quotes).
				You know how to use the Tools to extract relevant figures.
				Always state when a rate is a fallback rather than exact market data.

				Use the available tools to
				  - resolve exchange rates on any date
				  - convert amounts between pesos and dollars
				  - analyze past expenses, optionally restated for inflation
				  - project the coming months of obligations
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

const dateFormatDoc = `Dates use the YYYY-MM-DD format, single digit month and day accepted.
A month like 2025-03 means the first day of that month. Today is the default.`

func resolveRateFunc(e *indexa.Engine) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "ResolveRate",
			Description: `ResolveRate returns the official USD sell rate in pesos for a given date, with a tag telling whether it is exact market data or a fallback.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The date to resolve the rate for. " + dateFormatDoc,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The sell rate and its resolution tag (exact, prior, latest or none).",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := argDate(args, "date")
			if err != nil {
				return errResponse(id, "ResolveRate", err)
			}
			rate, res, err := e.ResolveRate(on, indexa.USD)
			if err != nil {
				return errResponse(id, "ResolveRate", err)
			}
			return okResponse(id, "ResolveRate", fmt.Sprintf("%s ARS per USD (%s)", rate, res))
		},
	}
}

func convertFunc(e *indexa.Engine) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Convert",
			Description: `Convert converts an amount between ARS and USD at the rate of a given date.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {
						Type:        genai.TypeNumber,
						Description: "The amount to convert.",
					},
					"currency": {
						Type:        genai.TypeString,
						Description: "The currency of the amount, ARS or USD.",
					},
					"to": {
						Type:        genai.TypeString,
						Description: "The target currency, ARS or USD.",
					},
					"date": {
						Type:        genai.TypeString,
						Description: "The date whose rate applies. " + dateFormatDoc,
					},
				},
				Required: []string{"amount", "currency", "to"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The converted amount.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			amount, ok := args["amount"].(float64)
			if !ok {
				return errResponse(id, "Convert", fmt.Errorf("argument 'amount' is not a number but %T", args["amount"]))
			}
			currency, _ := args["currency"].(string)
			to, _ := args["to"].(string)
			on, err := argDate(args, "date")
			if err != nil {
				return errResponse(id, "Convert", err)
			}
			m, err := e.Convert(indexa.M(amount, currency), to, on)
			if err != nil {
				return errResponse(id, "Convert", err)
			}
			return okResponse(id, "Convert", m.String())
		},
	}
}

func analyzeFunc(e *indexa.Engine) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Analyze",
			Description: `Analyze buckets the user's expenses over a date range and reports totals, seasonality alerts, the heaviest days and the latest-vs-previous trend.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from": {
						Type:        genai.TypeString,
						Description: "First day of the range. " + dateFormatDoc,
					},
					"to": {
						Type:        genai.TypeString,
						Description: "Last day of the range. " + dateFormatDoc,
					},
					"by": {
						Type:        genai.TypeString,
						Description: "Bucket granularity: daily, weekly, monthly, quarterly or yearly. Monthly is the default.",
					},
					"adjust": {
						Type:        genai.TypeBoolean,
						Description: "Restate every expense at present value through the CPI curve before bucketing.",
					},
				},
				Required: []string{"from", "to"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the bucketed series and its statistics.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			from, err := argDate(args, "from")
			if err != nil {
				return errResponse(id, "Analyze", err)
			}
			to, err := argDate(args, "to")
			if err != nil {
				return errResponse(id, "Analyze", err)
			}
			granularity := indexa.Monthly
			if by, ok := args["by"].(string); ok && by != "" {
				granularity, err = indexa.ParsePeriod(by)
				if err != nil {
					return errResponse(id, "Analyze", err)
				}
			}
			adjust, _ := args["adjust"].(bool)

			r := indexa.NewRange(from, to)
			analysis, err := e.Analyze(r, granularity, adjust)
			if err != nil {
				return errResponse(id, "Analyze", err)
			}
			return okResponse(id, "Analyze", renderer.AnalysisMarkdown(analysis, r, granularity))
		},
	}
}

func projectFunc(e *indexa.Engine) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Project",
			Description: `Project simulates the coming months of recurring obligations under a flat monthly inflation scenario.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"months": {
						Type:        genai.TypeInteger,
						Description: "How many months ahead to project.",
					},
					"inflation": {
						Type:        genai.TypeNumber,
						Description: "Flat monthly inflation percentage of the scenario, e.g. 4.5.",
					},
					"fx": {
						Type:        genai.TypeNumber,
						Description: "Flat ARS-per-USD rate for foreign obligations. Zero uses today's resolved rate.",
					},
				},
				Required: []string{"months"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown budget with per-month and per-category totals.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			months, ok := args["months"].(float64)
			if !ok {
				return errResponse(id, "Project", fmt.Errorf("argument 'months' is not a number but %T", args["months"]))
			}
			inflation, _ := args["inflation"].(float64)
			fx, _ := args["fx"].(float64)

			budget, err := e.Project(indexa.Today(), int(months),
				decimal.NewFromFloat(inflation), decimal.NewFromFloat(fx))
			if err != nil {
				return errResponse(id, "Project", err)
			}
			return okResponse(id, "Project", renderer.BudgetMarkdown(budget))
		},
	}
}

func argDate(args map[string]any, key string) (indexa.Date, error) {
	idate, hasDate := args[key]
	if !hasDate {
		return indexa.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return indexa.Today(), fmt.Errorf("argument %q is not a string as expected but %T", key, idate)
	}

	date, err := indexa.ParseDate(sdate)
	if err != nil {
		return indexa.Today(), fmt.Errorf("argument %q must be a valid date got %q. %s", key, sdate, dateFormatDoc)
	}

	return date, nil
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}
