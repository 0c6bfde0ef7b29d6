package runner

import (
	"strings"

	"github.com/hupe1980/agentdesk/agent"
)

// Intent is the routing decision for a request.
type Intent struct {
	// Agent is the specialist the request is handed off to.
	Agent string
	// Tool selects a tool of the specialist by name; empty means its first
	// tool.
	Tool string
	// Contextual requests pass the run context followed by the request
	// arguments. Others pass only the query text.
	Contextual bool
}

// Classifier maps a query to an Intent.
type Classifier interface {
	Classify(query string) Intent
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(query string) Intent

// Classify implements Classifier.
func (f ClassifierFunc) Classify(query string) Intent { return f(query) }

// Rule routes queries containing any of Keywords to Intent.
type Rule struct {
	Keywords []string
	Intent   Intent
}

// KeywordClassifier matches lower-cased queries against keyword rules in
// order. Queries matching no rule get Fallback.
type KeywordClassifier struct {
	Rules    []Rule
	Fallback Intent
}

// NewKeywordClassifier derives rules from the specialists of spec: every
// specialist with keywords becomes a rule, the default specialist the
// fallback.
func NewKeywordClassifier(spec agent.GraphSpec) *KeywordClassifier {
	c := &KeywordClassifier{}

	for _, sp := range spec.Specialists {
		intent := Intent{Agent: sp.Name, Contextual: sp.Contextual}

		if sp.Default {
			c.Fallback = intent
		}

		if len(sp.Keywords) > 0 {
			c.Rules = append(c.Rules, Rule{Keywords: sp.Keywords, Intent: intent})
		}
	}

	return c
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(query string) Intent {
	q := strings.ToLower(query)

	for _, r := range c.Rules {
		for _, k := range r.Keywords {
			if k != "" && strings.Contains(q, strings.ToLower(k)) {
				return r.Intent
			}
		}
	}

	return c.Fallback
}
