package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/runner"
)

func renderOutcome(w io.Writer, o runner.Outcome) {
	fmt.Fprintf(w, "%s %s\n", color.CyanString("User:"), o.Query)

	if o.Err != nil {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Error during agent handling:"), o.Err)
		fmt.Fprintln(w, "Continuing to next example...")
		fmt.Fprintln(w)

		return
	}

	fmt.Fprintf(w, "%s %v\n\n", color.GreenString(o.Agent+":"), o.Result)
}

func renderGraph(w io.Writer, g *agent.Graph) {
	triage := g.Triage()

	fmt.Fprintf(w, "%s (%s)\n", color.CyanString(triage.Name()), triage.Model())

	for _, s := range g.Specialists() {
		tools := make([]string, 0)
		for _, t := range s.Tools() {
			tools = append(tools, t.Name())
		}

		back := make([]string, 0)
		for _, h := range s.Handoffs() {
			back = append(back, h.Name())
		}

		fmt.Fprintf(w, "  -> %s (%s) tools=[%s] handoffs=[%s]\n",
			color.GreenString(s.Name()), s.Model(), strings.Join(tools, ", "), strings.Join(back, ", "))
	}
}
