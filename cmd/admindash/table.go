package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

type column struct {
	title string
	value func(domain.Row) string
}

var tableColumns = map[string][]column{
	domain.UsersResource.Name: {
		{"ID", func(r domain.Row) string { return r.ID(domain.UsersResource.IDField) }},
		{"Full Name", func(r domain.Row) string { return domain.UserFromRow(r).FullName() }},
		{"Username", func(r domain.Row) string { return r.String("username") }},
		{"Email", func(r domain.Row) string { return r.String("email") }},
		{"Role", func(r domain.Row) string { return r.String("role") }},
	},
	domain.ProductsResource.Name: {
		{"ID", func(r domain.Row) string { return r.ID(domain.ProductsResource.IDField) }},
		{"Name", func(r domain.Row) string { return r.String("name") }},
		{"Price", func(r domain.Row) string { return r.String("price") }},
		{"Stock", func(r domain.Row) string { return r.String("stock") }},
		{"Image", imageName},
	},
}

func renderRows(w io.Writer, res domain.Resource, rows []domain.Row) error {
	cols, ok := tableColumns[res.Name]
	if !ok {
		return fmt.Errorf("no table layout for %s", res.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))

	cells := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = c.value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func imageName(r domain.Row) string {
	img, ok := r["image"].(map[string]any)
	if !ok {
		return ""
	}
	return domain.Row(img).String("file_name")
}
