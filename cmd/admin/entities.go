package main

import (
	"context"
	"fmt"

	"bank-admin-go/internal/auth"
	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/nav"
	"bank-admin-go/internal/request"
	"bank-admin-go/internal/views"

	"github.com/spf13/cobra"
)

// entityCommands drives the views of one entity kind through a shell.
type entityCommands[T model.Entity] struct {
	app  *app
	kind model.Kind[T]
}

func newEntityCommand[T model.Entity](a *app, kind model.Kind[T]) *cobra.Command {
	c := &entityCommands[T]{app: a, kind: kind}

	cmd := &cobra.Command{
		Use:   kind.RouteBase,
		Short: fmt.Sprintf("Manage %s entities", kind.Name),
	}
	cmd.AddCommand(c.listCommand(), c.viewCommand(), c.newCommand(), c.editCommand(), c.deleteCommand())

	return cmd
}

func (c *entityCommands[T]) open(ctx context.Context, host views.DialogHost, listOptions request.Encoder) *nav.Shell {
	shell := nav.NewShell(ctx, nil)
	shell.SetGuard(auth.NewGuard(c.app.session, shell))

	service := entity.NewService(c.kind, entity.StaticEndpoints{BaseURL: c.app.cfg.APIURL}, c.app.client, c.app.session)
	if host == nil {
		host = newTerminalHost(c.app.in, c.app.out, false)
	}
	nav.Mount(shell, c.kind, service, host, listOptions)

	return shell
}

// render writes the current page and turns the pages that end a command early
// into errors.
func (c *entityCommands[T]) render(shell *nav.Shell) error {
	page := shell.Current()
	if page == nil {
		return fmt.Errorf("%s: nothing to show", shell.Path())
	}
	if err := page.Render(c.app.out); err != nil {
		return fmt.Errorf("rendering %s: %w", shell.Path(), err)
	}

	switch p := page.(type) {
	case nav.LoginPage:
		return errNotSignedIn
	case nav.NotFoundPage:
		return fmt.Errorf("%s: %w", c.kind.Name, errNotFound)
	case *views.List[T]:
		return p.Err
	}
	return nil
}

func (c *entityCommands[T]) visit(ctx context.Context, shell *nav.Shell, paths ...string) error {
	for _, path := range paths {
		if err := shell.Navigate(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (c *entityCommands[T]) listCommand() *cobra.Command {
	var (
		page, size int
		sort       []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s entities", c.kind.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shell := c.open(cmd.Context(), nil, request.Paged(page, size, sort...))
			defer shell.Close()

			if err := c.visit(cmd.Context(), shell, c.kind.RouteBase); err != nil {
				return err
			}
			if err := c.render(shell); err != nil {
				return err
			}

			if list, ok := shell.Current().(*views.List[T]); ok && list.TotalCount > len(list.Entities) {
				fmt.Fprintf(c.app.out, "Showing %d of %d\n", len(list.Entities), list.TotalCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to show, starting at 0")
	cmd.Flags().IntVar(&size, "size", 20, "entities per page")
	cmd.Flags().StringArrayVar(&sort, "sort", []string{"id,asc"}, "sort order as field,asc|desc")

	return cmd
}

func (c *entityCommands[T]) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view ID",
		Short: fmt.Sprintf("Show one %s", c.kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := c.open(cmd.Context(), nil, nil)
			defer shell.Close()

			if err := c.visit(cmd.Context(), shell, c.itemPath(args[0], "view")); err != nil {
				return err
			}
			return c.render(shell)
		},
	}
}

func (c *entityCommands[T]) newCommand() *cobra.Command {
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: fmt.Sprintf("Create a %s", c.kind.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shell := c.open(cmd.Context(), nil, nil)
			defer shell.Close()

			if err := c.visit(cmd.Context(), shell, c.kind.RouteBase, c.kind.RouteBase+"/new"); err != nil {
				return err
			}
			return c.save(cmd, shell, fields)
		},
	}
	c.fieldFlags(cmd, fields)

	return cmd
}

// editCommand opens the edit form from the detail page, so a successful save goes
// back to the updated detail.
func (c *entityCommands[T]) editCommand() *cobra.Command {
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: fmt.Sprintf("Update a %s", c.kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := c.open(cmd.Context(), nil, nil)
			defer shell.Close()

			if err := c.visit(cmd.Context(), shell, c.itemPath(args[0], "view"), c.itemPath(args[0], "edit")); err != nil {
				return err
			}
			return c.save(cmd, shell, fields)
		},
	}
	c.fieldFlags(cmd, fields)

	return cmd
}

func (c *entityCommands[T]) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", c.kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := c.open(cmd.Context(), newTerminalHost(c.app.in, c.app.out, yes), nil)
			defer shell.Close()

			if err := c.visit(cmd.Context(), shell, c.itemPath(args[0], "view")); err != nil {
				return err
			}
			detail, ok := shell.Current().(*views.Detail[T])
			if !ok {
				return c.render(shell)
			}

			if err := c.visit(cmd.Context(), shell, c.kind.RouteBase); err != nil {
				return err
			}
			list, ok := shell.Current().(*views.List[T])
			if !ok {
				return c.render(shell)
			}

			result := list.Delete(shell.Context(), *detail.Entity)
			fmt.Fprintf(c.app.out, "%s %s %s\n", c.kind.Name, args[0], result)
			if result != views.Deleted {
				return nil
			}
			return c.render(shell)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *entityCommands[T]) fieldFlags(cmd *cobra.Command, fields map[string]*string) {
	fields[views.FieldType] = cmd.Flags().String(views.FieldType, "", fmt.Sprintf("%s type", c.kind.Name))
	fields[views.FieldNumber] = cmd.Flags().String(views.FieldNumber, "", fmt.Sprintf("%s number", c.kind.Name))
}

// save copies the flags the user set into the form and saves it.
func (c *entityCommands[T]) save(cmd *cobra.Command, shell *nav.Shell, fields map[string]*string) error {
	update, ok := shell.Current().(*views.Update[T])
	if !ok {
		return c.render(shell)
	}

	for name, value := range fields {
		if cmd.Flags().Changed(name) {
			update.Form.Get(name).SetValue(*value)
		}
	}

	if err := update.Save(shell.Context()); err != nil {
		if renderErr := update.Render(c.app.out); renderErr != nil {
			return renderErr
		}
		return err
	}

	fmt.Fprintf(c.app.out, "Saved %s\n", c.kind.Name)
	return c.render(shell)
}

func (c *entityCommands[T]) itemPath(id, action string) string {
	return c.kind.RouteBase + "/" + id + "/" + action
}
