package cli

import (
	"context"
	"fmt"
	"strings"
)

// repl is a simple read–eval–print loop. It reads a line, parses the first
// token as the command, and dispatches to methods on the App. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
func (a *App) repl(ctx context.Context) {
	for {
		status := "logged out"
		if a.isLoggedIn() {
			status = "logged in"
		}
		fmt.Fprintf(a.out, "tasklist (%s)> ", status)

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: whoami, lists, addlist, rmlist <id>, tasks, addtask, done <id>, rmtask <id>, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}
		case "register":
			a.report(a.Register(ctx))
		case "login":
			a.report(a.Login(ctx))
		case "whoami":
			a.report(a.WhoAmI(ctx))
		case "logout":
			a.report(a.Logout(ctx))
		case "lists":
			a.report(a.Lists(ctx))
		case "addlist":
			a.report(a.AddList(ctx))
		case "rmlist":
			a.report(a.withIDArg(args, func(id string) error { return a.RemoveList(ctx, id) }))
		case "tasks":
			a.report(a.Tasks(ctx))
		case "addtask":
			a.report(a.AddTask(ctx))
		case "done":
			a.report(a.withIDArg(args, func(id string) error { return a.CompleteTask(ctx, id) }))
		case "rmtask":
			a.report(a.withIDArg(args, func(id string) error { return a.RemoveTask(ctx, id) }))
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q, type help\n", cmd)
		}
	}
}

func (a *App) withIDArg(args []string, fn func(id string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one id argument")
	}
	return fn(args[0])
}

func (a *App) report(err error) {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
