package resolver

import (
	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

// FallbackParamNames are the keys positional arguments are mapped onto when
// a structured-payload tool declares no schema and more than one (or a
// single non-string) argument is given.
var FallbackParamNames = []string{"confirmation_number", "new_seat", "seat", "query", "question", "input"}

// SingleStringKeys receive a lone string argument when no schema is declared.
var SingleStringKeys = []string{"question", "query", "input"}

// BuildPayload synthesizes the structured payload for a tool from its
// candidate arguments. Run contexts are never part of the payload.
//
// With a schema, non-context positional arguments are zipped onto the
// schema's parameter names in order, and named arguments whose key is a
// declared parameter are copied. Without a schema (zero Schema), an argument
// list holding exactly one string and nothing else (not even a run context)
// is replicated under SingleStringKeys; otherwise the non-context arguments
// are mapped positionally onto FallbackParamNames. Surplus arguments are
// dropped.
func BuildPayload(schema tool.Schema, in tool.Input) map[string]any {
	payload := map[string]any{}
	filtered := core.WithoutRunContext(in.Args)

	if !schema.IsZero() {
		names := schema.Names()
		for i, v := range filtered {
			if i >= len(names) {
				break
			}
			payload[names[i]] = v
		}

		for k, v := range in.Named {
			if schema.Has(k) {
				payload[k] = v
			}
		}

		return payload
	}

	if s, ok := singleString(in.Args); ok {
		for _, k := range SingleStringKeys {
			payload[k] = s
		}

		return payload
	}

	for i, v := range filtered {
		if i >= len(FallbackParamNames) {
			break
		}
		payload[FallbackParamNames[i]] = v
	}

	return payload
}

func singleString(args []any) (string, bool) {
	if len(args) != 1 {
		return "", false
	}

	s, ok := args[0].(string)

	return s, ok
}
