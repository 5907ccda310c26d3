package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/docs"
	"github.com/etnz/wallet/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	tools := make([]Tool, 0, len(experts))
	for _, e := range experts {
		tools = append(tools, e.Tool())
	}
	return &Expert{
		Name:  "Facilitator",
		Model: model,
		Instruction: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user tracks personal accounts (cash, bank, savings, envelopes) with a balance,
			an income and expenses. They come to understand where their money goes.
			Devise a plan of questions to ask to each expert and come up with the best response.

			The user refers to accounts by name or by their position in the list, ask the
			Bookkeeper to resolve them.
		`,
		Tools: NewToolbox(tools...),
	}
}

// Bookkeeper returns the expert that reads the user's accounts. It never
// modifies the collection.
func Bookkeeper(c *wallet.Collection, currency string) *Expert {
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper, in charge of the user's accounts.
		It knows every account, its balance, income, expenses and the history of its transactions.`,
		Model: model,
		Instruction: `
				You are a bookkeeper in charge of the user's accounts.
				Use the Tools to read the accounts and their transactions.
				Amounts are always positive, the operation tells whether money came in (credit) or
				went out (debit).

				` + must(docs.GetTopic("accounts")),
		Tools: NewToolbox(ListAccounts(c, currency), AccountHistory(c, currency)),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ListAccounts is the tool that renders the summary of all accounts.
func ListAccounts(c *wallet.Collection, currency string) Tool {
	return Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "ListAccounts",
			Description: "ListAccounts lists all accounts in display order with their position, name, balance, income, expenses and number of transactions, followed by the totals.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the accounts.",
			},
		},
		Run: func(context.Context, map[string]any) (string, error) {
			return renderer.Summary(c.List(), currency), nil
		},
	}
}

// AccountHistory is the tool that renders the ledger of one account.
func AccountHistory(c *wallet.Collection, currency string) Tool {
	return Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "AccountHistory",
			Description: "AccountHistory lists the transactions of one account, oldest first, with the balance after each of them.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account": {
						Type:        genai.TypeString,
						Description: "The account: its 1-based position in the list, its id or id prefix, or its exact name.",
					},
				},
				Required: []string{"account"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the transactions.",
			},
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			ref, ok := args["account"].(string)
			if !ok {
				return "", fmt.Errorf("argument 'account' is not a string as expected but %T", args["account"])
			}
			a, err := c.Find(ref)
			if errors.Is(err, wallet.ErrAccountNotFound) {
				return "", fmt.Errorf("%w. Call ListAccounts to see the existing accounts", err)
			}
			if err != nil {
				return "", err
			}
			return renderer.History(a, currency), nil
		},
	}
}
