package airline

import (
	"context"
	"strings"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

// FAQToolName is the name of the FAQ lookup tool.
const FAQToolName = "faq_lookup_tool"

// UnknownAnswer is returned for questions no FAQ entry matches.
const UnknownAnswer = "I'm sorry, I don't know the answer to that question"

type faqEntry struct {
	keywords []string
	answer   string
}

// Entries are matched in order; the first keyword hit wins.
var faqEntries = []faqEntry{
	{
		keywords: []string{"baggage", "luggage", "carry-on", "bag", "weight"},
		answer: "You are allowed to bring one bag on the plane. It must be under 50 pounds " +
			"and 22 inches x 14 inches x 9 inches.",
	},
	{
		keywords: []string{"seat", "seats", "seating", "economy", "business", "exit row"},
		answer: "There are 120 seats on the plane. There are 22 business class seats and 98 economy seats. " +
			"Exit rows are rows 4 and 16. Rows 5-8 are Economy Plus, with extra legroom.",
	},
	{
		keywords: []string{"wifi", "internet", "connectivity", "network"},
		answer:   "We have free wifi on the plane, join Airline-Wifi",
	},
}

// FAQArgs is the parameter struct of the FAQ lookup tool.
type FAQArgs struct {
	Question string `json:"question" description:"The customer's question"`
}

// LookupFAQ answers question from the policy table.
func LookupFAQ(question string) string {
	q := strings.ToLower(question)

	for _, e := range faqEntries {
		for _, k := range e.keywords {
			if strings.Contains(q, k) {
				return e.answer
			}
		}
	}

	return UnknownAnswer
}

// NewFAQLookupTool returns the asynchronous FAQ lookup tool.
func NewFAQLookupTool() *tool.FunctionTool {
	return tool.NewFunctionToolFromStruct(
		FAQToolName,
		"Lookup frequently asked questions about baggage, seating and wifi",
		FAQArgs{},
		func(_ context.Context, _ *core.ToolContext, args map[string]any) (any, error) {
			question, _ := args["question"].(string)
			return LookupFAQ(question), nil
		},
		func(o *tool.FunctionToolOptions) { o.Async = true },
	)
}
