package main

import (
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mrchypark/shopclient/pkg/model"
)

// withApp builds the client, runs fn and releases the cache backend.
func withApp(flags *rootFlags, fn func(a *app) error) error {
	a, err := newApp(flags)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// render writes models as indented JSON or as a table built by toTable.
func render[T any](w io.Writer, format string, models []T, toTable func(table.Writer, []T)) error {
	if format == outputJSON {
		if models == nil {
			models = []T{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	toTable(tw, models)
	tw.Render()
	return nil
}

func productTable(tw table.Writer, products []*model.Product) {
	tw.AppendHeader(table.Row{"ID", "Title", "Handle", "Vendor", "Available", "Variants"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 40},
		{Number: 6, Align: text.AlignRight},
	})
	for _, p := range products {
		tw.AppendRow(table.Row{p.ID, p.Title, p.Handle, p.Vendor, yesNo(p.Available), len(p.Variants)})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "Total", strconv.Itoa(len(products))})
}

func collectionTable(tw table.Writer, collections []*model.Collection) {
	tw.AppendHeader(table.Row{"ID", "Title", "Handle", "Sort order", "Updated"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 40},
	})
	for _, c := range collections {
		tw.AppendRow(table.Row{c.ID, c.Title, c.Handle, c.SortOrder, formatTime(c.UpdatedAt)})
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateTime)
}
