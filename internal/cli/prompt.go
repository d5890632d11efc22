package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user typed "y" or "yes".
	Accepted bool
	// Cancelled is true if input ended before an answer was read.
	Cancelled bool
}

// errConfirmRequired is returned by destructive commands run without a
// terminal and without --yes.
var errConfirmRequired = errors.New("refusing to remove without confirmation: pass --yes")

// Confirm asks a yes/no question. The default answer is "No".
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		return PromptResult{Cancelled: true}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}

// confirmRemoval returns true when the removal may proceed. With --yes it
// never prompts; without a terminal it refuses.
func confirmRemoval(cmd *cobra.Command, yes bool, what string) (bool, error) {
	if yes {
		return true, nil
	}
	if !isTerminal(os.Stdin) {
		return false, errConfirmRequired
	}
	res := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("Remove %s?", what))
	if !res.Accepted {
		cmd.Println("Aborted")
		return false, nil
	}
	return true, nil
}
