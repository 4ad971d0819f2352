// Package cli implements the interactive command-line client for the
// tasklist server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/jtech/tasklist/internal/client/api"
)

type App struct {
	client *api.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s (%s). You can now log in.\n", user.Name, user.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Lists(ctx context.Context) error {
	lists, err := a.client.TaskLists(ctx)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		fmt.Fprintln(a.out, "No task lists.")
		return nil
	}
	for _, l := range lists {
		fmt.Fprintf(a.out, "%s  %s\n", l.ID, l.Name)
	}
	return nil
}

func (a *App) AddList(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "List name", a.out)
	if err != nil {
		return err
	}
	list, err := a.client.CreateTaskList(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created list %s\n", list.ID)
	return nil
}

func (a *App) RemoveList(ctx context.Context, id string) error {
	if err := a.client.DeleteTaskList(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "List deleted.")
	return nil
}

func (a *App) Tasks(ctx context.Context) error {
	tasks, err := a.client.Tasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks.")
		return nil
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %s  %s\n", mark, t.ID, t.Title)
	}
	return nil
}

func (a *App) AddTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	listID, err := getSimpleText(a.reader, "Task list id (optional)", a.out)
	if err != nil {
		return err
	}

	task, err := a.client.CreateTask(ctx, title, description, listID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", task.ID)
	return nil
}

func (a *App) CompleteTask(ctx context.Context, id string) error {
	task, err := a.client.CompleteTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Done: %s\n", task.Title)
	return nil
}

func (a *App) RemoveTask(ctx context.Context, id string) error {
	if err := a.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task deleted.")
	return nil
}

func (a *App) Run(ctx context.Context) {
	a.repl(ctx)
}
