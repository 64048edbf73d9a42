package agent

import (
	"context"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation. Every
// other expert is exposed to it as a callable function.
func newFacilitator(experts ...*Expert) *Expert {
	funcs := make([]Func, 0, len(experts))
	for _, e := range experts {
		funcs = append(funcs, expertFunc(e))
	}
	return &Expert{
		Name:  "Facilitator",
		Model: model,
		Instructions: `
		As a facilitator you are in charge of the conversation and solving the user's request.

		Learn about the experts' skills from the Tools and ask them questions.
		They are at your service and 100% dedicated to you, they keep context of your previous questions.

		The user is here primarily to understand his spending, his subscriptions and the value
		of his investments. Devise a plan of questions to ask each expert and come up with
		the best response to the user's request.

		The user will assume that you already know his expenses, subscriptions and investments,
		check with the Bookkeeper first to understand what they are.
		`,
		Library: NewLibrary(funcs...),
	}
}

// expertFunc exposes an expert as a function the facilitator can call.
func expertFunc(e *Expert) Func {
	return Func{
		Decl: &genai.FunctionDeclaration{
			Name:        e.Name,
			Description: e.Description,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question": {
						Type:        genai.TypeString,
						Description: "The question to ask this expert.",
					},
				},
				Required: []string{"question"},
			},
		},
		Call: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			question, ok := args["question"].(string)
			if !ok {
				return nil, fmt.Errorf("argument 'question' is not a string but %T", args["question"])
			}
			content, err := e.Ask(ctx, &genai.Part{Text: question})
			if err != nil {
				return nil, err
			}
			return map[string]any{"answer": content.Parts[0].Text}, nil
		},
	}
}

// NewAnalyst creates the expert for market and price context, grounded on
// Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert financial analyst,
		very well aware of cryptocurrencies, precious metals and currency markets,
		and of the latest news about them.
		Ask the Analyst whenever you need recent or grounding information.`,
		Model: model,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		Instructions: `
		You are an expert financial analyst. You can search and find anything related to
		cryptocurrencies, precious metals, currencies and markets. You leverage Google Search
		to ground your assertions in solid truth.
		You can get the latest news too, and you know how to relate them to the user's request.
		`,
	}
}

// NewBookkeeper creates the expert in charge of the user's own records. It
// reads the store and answers with the same markdown reports the CLI prints.
func NewBookkeeper(store *fintrack.Store, limit fintrack.Money) *Expert {
	lib := NewLibrary(
		dashboardFunc(store, limit),
		expensesFunc(store),
		subscriptionsFunc(store),
		holdingsFunc(store),
	)

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He keeps the user's expenses, subscriptions,
		investments and assets, and can compute the relevant figures about the user's
		spending and wealth.`,
		Model: model,
		Instructions: `
		You are a bookkeeper in charge of the user's personal finance records.
		You know how to use the Tools to extract relevant information about the user's
		expenses, subscriptions, investments and assets. You are part of a team of experts,
		yours is everything about the user's own records. Pardon their approximative
		language and figure out what they meant.
		`,
		Library: lib,
	}
}

func dashboardFunc(store *fintrack.Store, limit fintrack.Money) Func {
	return Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Dashboard",
			Description: `Dashboard summarizes the current month: subscription costs, expenses,
			total spending against the monthly limit, and the portfolio totals.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted dashboard of the current month.",
			},
		},
		Call: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			board := fintrack.NewDashboard(store.Subscriptions(), store.Expenses(), store.Investments(), store.Quotes(), limit, date.Today())
			return map[string]any{"output": renderer.Dashboard(board)}, nil
		},
	}
}

func expensesFunc(store *fintrack.Store) Func {
	return Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Expenses",
			Description: `Expenses lists all recorded one-time expenses with a breakdown by category.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of expenses and category totals.",
			},
		},
		Call: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"output": renderer.Expenses(store.Expenses())}, nil
		},
	}
}

func subscriptionsFunc(store *fintrack.Store) Func {
	return Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Subscriptions",
			Description: `Subscriptions lists all recurring subscriptions with their payment status for the current cycle.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of subscriptions.",
			},
		},
		Call: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"output": renderer.Subscriptions(store.Subscriptions(), date.Today())}, nil
		},
	}
}

func holdingsFunc(store *fintrack.Store) Func {
	return Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists all investments with their cost basis, current market value
			and profit or loss at the latest known quotes.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of investment holdings.",
			},
		},
		Call: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"output": renderer.Holdings(fintrack.Allocation(store.Investments(), store.Quotes()))}, nil
		},
	}
}
