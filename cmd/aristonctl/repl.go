package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// repl runs the interactive loop. The verbs mirror the one-shot
// subcommands and share the app's device handle cache, so a state
// refresh is one exchange after the first lookup.
func (a *app) repl(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ariston> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	// Route verb output through readline so prints do not tear the prompt.
	out := a.out
	a.out = rl.Stdout()
	defer func() { a.out = out }()

	printREPLHelp(rl)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			// EOF or closed input.
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			printREPLHelp(rl)
		case "quit", "exit", "q":
			return nil
		default:
			if err := a.run(ctx, cmd, args); err != nil {
				fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
			}
		}
	}
}

func printREPLHelp(rl *readline.Instance) {
	fmt.Fprintln(rl.Stdout(), `Commands:
  discover                   List the account's gateways
  state <gateway>            Show the current appliance state
  energy <gateway>           Show the latest consumption figures
  errors <gateway>           Show the appliance fault list
  set-temp <gateway> <temp>  Set the water heater target temperature
  set-mode <gateway> <mode>  Set the operation mode by display name
  help                       Show this help
  quit                       Exit`)
}
