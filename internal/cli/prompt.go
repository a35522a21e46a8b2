package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const question = "Do you want to delete these folders? (y/n): "

// confirm asks the operator and waits for one line of input.
// End of input or a read error counts as a refusal.
func confirm(in *bufio.Reader, out io.Writer) bool {
	fmt.Fprint(out, question)

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)

		return false
	}

	return isAffirmative(line)
}

// isAffirmative reports whether a response is "y" or "yes", ignoring case and surrounding whitespace.
func isAffirmative(response string) bool {
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
