// Package input handles slash commands typed into the prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Nothing matches once the command name is complete and arguments follow.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	var matches []PromptCommand
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParsePromptCommand splits "/name args" into its lowercase name and the
// trimmed argument text. Input without a leading slash has no name.
func ParsePromptCommand(input string) (name, args string) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", input
	}
	name, args, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(args)
}
