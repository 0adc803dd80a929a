package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command.
	RawArgs string
}

// Parse splits a text line into a command and arguments. Text after '#'
// is a comment, so scripted encounters can be annotated.
//
// Postcondition: Returns a ParseResult. If line is blank or a comment, Command is empty.
func Parse(line string) ParseResult {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}

	result := ParseResult{Command: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		result.Args = fields[1:]
		trimmed := strings.TrimSpace(line)
		result.RawArgs = strings.TrimSpace(trimmed[len(fields[0]):])
	}
	return result
}
