package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"
)

func (a *app) runActivity(ctx context.Context, args []string) error {
	fs := a.flagSet("activity")
	limit := fs.Int("n", 20, "Number of entries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.activity == nil {
		return errors.New("activity log disabled: set ADMIN_ACTIVITY_LOG=true")
	}

	entries, err := a.activity.Recent(ctx, *limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "When\tLevel\tResource\tMessage")
	for _, n := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.At.Local().Format(time.DateTime), n.Level, n.Resource, n.Message)
	}
	return tw.Flush()
}
