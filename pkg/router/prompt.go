package router

import (
	"fmt"
	"strings"

	"github.com/hypecode-tech/saafir/pkg/action"
	"github.com/hypecode-tech/saafir/pkg/llm"
)

// catalog renders the registered actions for the model: one block per
// action with its name, description and schema description. Identifiers are
// emitted exactly as declared so the model can echo them back unmodified.
func catalog(defs []*action.Definition) string {
	var sb strings.Builder
	for _, def := range defs {
		fmt.Fprintf(&sb, "- %s", def.Name)
		if def.Description != "" {
			fmt.Fprintf(&sb, ": %s", def.Description)
		}
		sb.WriteString("\n")
		if def.Schema != nil {
			desc := def.Schema.Describe()
			for _, line := range strings.Split(desc, "\n") {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BuildMessages constructs the system/user message pair for one routing
// request. This is a pure function of the router configuration and the
// user input; no validation of the eventual model output happens here.
func (r *Router) BuildMessages(userInput string) []llm.Message {
	actionList := catalog(r.actions.All())

	systemContext := r.context
	if systemContext == "" {
		systemContext = "You are an intent router. You match free-form user requests " +
			"to exactly one of the registered actions and extract its parameters.\n\n" +
			"Registered actions:\n" + actionList
	}

	var user strings.Builder
	user.WriteString("Available actions:\n")
	user.WriteString(actionList)
	user.WriteString("\n\nUser request:\n\"\"\"\n")
	user.WriteString(userInput)
	user.WriteString("\n\"\"\"\n\n")
	user.WriteString("Reply with ONLY a JSON object containing exactly these three keys:\n")
	user.WriteString(`{"actionName": "<name of the chosen action>", "parameters": {<extracted parameters>}, "response": "<reply to the user>"}` + "\n")
	user.WriteString("Rules:\n")
	user.WriteString("- \"actionName\" and every parameter key must match the declared identifiers exactly; never translate or rename them.\n")
	fmt.Fprintf(&user, "- \"response\" must be written in %s and should phrase the outcome for the user.\n", r.language)
	user.WriteString("- Output the bare JSON object with no surrounding prose and no markdown fencing.\n")

	return []llm.Message{
		llm.NewSystemMessage(systemContext),
		llm.NewUserMessage(user.String()),
	}
}
