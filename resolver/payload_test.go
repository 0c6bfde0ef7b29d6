package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

func TestBuildPayload(t *testing.T) {
	rc := core.NewRunContext("s", nil, nil)
	ab := tool.NewSchema(tool.Parameter{Name: "a"}, tool.Parameter{Name: "b"})

	tests := []struct {
		name   string
		schema tool.Schema
		in     tool.Input
		want   map[string]any
	}{
		{
			name:   "schema zips positional",
			schema: ab,
			in:     tool.NewInput("x", "y"),
			want:   map[string]any{"a": "x", "b": "y"},
		},
		{
			name:   "schema skips context",
			schema: ab,
			in:     tool.NewInput(rc, "x", "y"),
			want:   map[string]any{"a": "x", "b": "y"},
		},
		{
			name:   "schema drops surplus",
			schema: ab,
			in:     tool.NewInput(1, 2, 3),
			want:   map[string]any{"a": 1, "b": 2},
		},
		{
			name:   "schema copies declared named args only",
			schema: ab,
			in:     tool.Input{Args: []any{"x"}, Named: map[string]any{"b": "nb", "z": "ignored"}},
			want:   map[string]any{"a": "x", "b": "nb"},
		},
		{
			name: "single string",
			in:   tool.NewInput("hello"),
			want: map[string]any{"question": "hello", "query": "hello", "input": "hello"},
		},
		{
			name: "context and single string uses fallback",
			in:   tool.NewInput(rc, "hello"),
			want: map[string]any{"confirmation_number": "hello"},
		},
		{
			name: "fallback names",
			in:   tool.NewInput(rc, "ABC123", "12A"),
			want: map[string]any{"confirmation_number": "ABC123", "new_seat": "12A"},
		},
		{
			name: "single non-string uses fallback",
			in:   tool.NewInput(42),
			want: map[string]any{"confirmation_number": 42},
		},
		{
			name: "only context",
			in:   tool.NewInput(rc),
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPayload(tt.schema, tt.in))
		})
	}
}

func TestBuildPayload_SchemaZipProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z_]{1,12}`), 1, 8, rapid.ID[string]).Draw(t, "names")
		values := rapid.SliceOfN(rapid.Int(), 0, 10).Draw(t, "values")

		params := make([]tool.Parameter, len(names))
		for i, n := range names {
			params[i] = tool.Parameter{Name: n}
		}

		args := make([]any, len(values))
		for i, v := range values {
			args[i] = v
		}

		got := BuildPayload(tool.NewSchema(params...), tool.NewInput(args...))

		want := min(len(names), len(values))
		if len(got) != want {
			t.Fatalf("payload has %d keys, want %d", len(got), want)
		}

		for i := 0; i < want; i++ {
			if got[names[i]] != values[i] {
				t.Fatalf("payload[%q] = %v, want %v", names[i], got[names[i]], values[i])
			}
		}
	})
}

func TestBuildPayload_SingleStringProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		withContext := rapid.Bool().Draw(t, "withContext")

		args := []any{s}
		if withContext {
			args = append([]any{core.NewRunContext("s", nil, nil)}, args...)
		}

		got := BuildPayload(tool.Schema{}, tool.NewInput(args...))

		if withContext {
			if len(got) != 1 || got[FallbackParamNames[0]] != s {
				t.Fatalf("payload = %v, want only %s=%q", got, FallbackParamNames[0], s)
			}

			return
		}

		if len(got) != len(SingleStringKeys) {
			t.Fatalf("payload has %d keys, want %d", len(got), len(SingleStringKeys))
		}

		for _, k := range SingleStringKeys {
			if got[k] != s {
				t.Fatalf("payload[%q] = %v, want %q", k, got[k], s)
			}
		}
	})
}
