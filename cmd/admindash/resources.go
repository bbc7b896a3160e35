package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/service"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/notify"
)

// resourceCommand builds the list/add/edit/delete subcommands of one
// collection.
func (a *app) resourceCommand(res domain.Resource) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%s: expected list, add, edit or delete", res.Name)
		}
		sub, args := args[0], args[1:]

		s, err := a.session(ctx)
		if err != nil {
			return err
		}
		dash, done := a.dashboard(ctx, s)
		defer done()

		screen, ok := dash.Screen(res.Name)
		if !ok {
			return fmt.Errorf("%w: role %q cannot open %s", domain.ErrForbidden, s.Role, res.Name)
		}

		switch sub {
		case "list", "ls":
			return a.listRows(ctx, screen, args)
		case "add":
			return a.addRow(ctx, screen, args)
		case "edit":
			return a.editRow(ctx, screen, args)
		case "delete", "rm":
			return a.deleteRow(ctx, screen, args)
		default:
			return fmt.Errorf("%s: unknown subcommand %q", res.Name, sub)
		}
	}
}

// dashboard wires the controllers for s. done flushes the activity log.
func (a *app) dashboard(ctx context.Context, s domain.Session) (*service.Dashboard, func()) {
	notifier := notify.Multi{notify.NewWriter(a.out), notify.NewLog(a.log)}
	done := func() {}
	if a.activity != nil {
		act := notify.NewActivity(ctx, a.activity, 0, a.log)
		notifier = append(notifier, act)
		done = act.Close
	}

	var opts []service.ListOption
	if a.cfg.Client.ServerPaging {
		opts = append(opts, service.WithServerPaging())
	}
	return service.NewDashboard(a.client, s, notifier, a.authz, a.log, opts...), done
}

func (a *app) listRows(ctx context.Context, screen *service.Screen, args []string) error {
	fs := a.flagSet(screen.Resource.Name + " list")
	def := domain.DefaultPageState()
	page := fs.Int("page", 1, "Page number, starting at 1")
	size := fs.Int("size", def.PageSize, fmt.Sprintf("Rows per page, one of %v", domain.PageSizeOptions))
	filter := fs.String("filter", "", "Show only rows whose fields contain every word of this text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := screen.List
	list.SetFilter(*filter)
	if err := list.SetPageState(domain.PageState{PageSize: *size}); err != nil {
		return err
	}
	if err := list.SetPageState(domain.PageState{PageIndex: *page - 1, PageSize: *size}); err != nil {
		return err
	}
	if _, err := list.Refresh(ctx); err != nil {
		return err
	}

	if err := renderRows(a.out, screen.Resource, list.Visible()); err != nil {
		return err
	}
	if !a.cfg.Client.ServerPaging {
		total := len(list.Filtered())
		pages := (total + *size - 1) / *size
		fmt.Fprintf(a.out, "page %d of %d (%d %s)\n", *page, max(pages, 1), total, screen.Resource.Name)
	}
	return nil
}

func (a *app) addRow(ctx context.Context, screen *service.Screen, args []string) error {
	res := screen.Resource
	fs := a.flagSet(res.Name + " add")
	values := fieldFlags(fs, res.CreateFields)
	image := imageFlag(fs, res)
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := screen.Add
	form.Open(nil)
	for name, v := range values {
		if err := form.SetField(name, *v); err != nil {
			return err
		}
	}
	if err := attach(form, image); err != nil {
		return err
	}
	return a.submit(ctx, form)
}

func (a *app) editRow(ctx context.Context, screen *service.Screen, args []string) error {
	res := screen.Resource
	id, args := splitID(args)
	fs := a.flagSet(res.Name + " edit")
	values := fieldFlags(fs, res.UpdateFields)
	image := imageFlag(fs, res)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		if id = fs.Arg(0); id == "" {
			return fmt.Errorf("%s edit: missing id", res.Name)
		}
	}

	row, err := findRow(ctx, screen, id)
	if err != nil {
		return err
	}

	form := screen.Edit
	form.Open(row)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		v, ok := values[flagField(f.Name)]
		if !ok || setErr != nil {
			return
		}
		setErr = form.SetField(flagField(f.Name), *v)
	})
	if setErr != nil {
		return setErr
	}
	if err := attach(form, image); err != nil {
		return err
	}
	return a.submit(ctx, form)
}

func (a *app) deleteRow(ctx context.Context, screen *service.Screen, args []string) error {
	res := screen.Resource
	id, args := splitID(args)
	fs := a.flagSet(res.Name + " delete")
	yes := fs.Bool("yes", false, "Delete without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		if id = fs.Arg(0); id == "" {
			return fmt.Errorf("%s delete: missing id", res.Name)
		}
	}

	prompt := screen.Delete
	prompt.Open(id)
	if !*yes {
		answer, err := a.readLine(fmt.Sprintf("Delete %s %s? [y/N] ", strings.ToLower(res.Singular), id))
		if err != nil || (!strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes")) {
			prompt.Cancel(ctx)
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
	}
	return prompt.Confirm(ctx)
}

func (a *app) submit(ctx context.Context, form *service.FormController) error {
	err := form.Submit(ctx)
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		names := make([]string, 0, len(ve.Fields))
		for name := range ve.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(a.out, "  --%s: %s\n", flagName(name), ve.Fields[name])
		}
	}
	return err
}

func findRow(ctx context.Context, screen *service.Screen, id string) (domain.Row, error) {
	rows, err := screen.List.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.ID(screen.Resource.IDField) == id {
			return row, nil
		}
	}
	return nil, fmt.Errorf("%s %s not found", strings.ToLower(screen.Resource.Singular), id)
}

// fieldFlags registers one string flag per form field, keyed by field name.
func fieldFlags(fs *flag.FlagSet, fields []domain.Field) map[string]*string {
	values := make(map[string]*string, len(fields))
	for _, f := range fields {
		values[f.Name] = fs.String(flagName(f.Name), "", f.Label)
	}
	return values
}

func imageFlag(fs *flag.FlagSet, res domain.Resource) *string {
	if res.AttachmentField == "" {
		return nil
	}
	return fs.String("image", "", "Path of the file sent as "+res.AttachmentField)
}

func attach(form *service.FormController, path *string) error {
	if path == nil || *path == "" {
		return nil
	}
	content, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read attachment: %w", err)
	}
	return form.SetAttachment(&domain.Attachment{FileName: filepath.Base(*path), Content: content})
}

// splitID takes a leading positional id so flags may follow it.
func splitID(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func flagName(field string) string { return strings.ReplaceAll(field, "_", "-") }

func flagField(name string) string { return strings.ReplaceAll(name, "-", "_") }
