// Package repl implements the interactive prompt: read an expression, print
// its truth table, re-prompt on user errors.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/render"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// Prompt is printed before every line read.
const Prompt = "Enter expression: "

// InvalidMessage is printed for any SyntaxError.
const InvalidMessage = "Invalid expression, please try again"

// Options controls output and looping.
type Options struct {
	ColumnWidth int
	Format      render.Format
	// Continuous keeps prompting after a table was printed. Otherwise the
	// loop ends at the first success.
	Continuous bool
}

// Run reads expressions from in until one evaluates (or until EOF when
// Continuous is set). User errors are reported on out and re-prompted;
// an InternalError stops the loop and is returned.
func Run(in io.Reader, out io.Writer, e *engine.Engine, opts Options) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		res, err := e.Evaluate(scanner.Text())
		if err != nil {
			if !types.IsUserError(err) {
				log.Printf("internal error: %v", err)
				return err
			}
			fmt.Fprintln(out, userMessage(err))
			continue
		}

		if err := render.Write(out, opts.Format, res, opts.ColumnWidth); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		if !opts.Continuous {
			return nil
		}
	}
}

func userMessage(err error) string {
	var ee *types.EngineError
	if errors.As(err, &ee) && ee.HasTag(types.TagVariableLimitExceeded) {
		return ee.Message
	}
	return InvalidMessage
}
