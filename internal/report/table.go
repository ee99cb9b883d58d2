package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/code19m/errx"
	"github.com/fatih/color"
	"github.com/spf13/cast"
	"github.com/uptrace/bun"
)

// Table is a report result with driver values already rendered as text.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func query(sql string) Func {
	return func(ctx context.Context, db bun.IDB) (*Table, error) {
		rows, err := db.QueryContext(ctx, sql)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return nil, errx.Wrap(err)
		}

		t := &Table{Columns: cols, Rows: make([][]string, 0)}

		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}

			if err = rows.Scan(ptrs...); err != nil {
				return nil, errx.Wrap(err)
			}

			row := make([]string, len(cols))
			for i, v := range values {
				row[i] = render(v)
			}
			t.Rows = append(t.Rows, row)
		}

		return t, errx.Wrap(rows.Err())
	}
}

// render prints NULL as "-" and rounds floats to two decimals.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		return cast.ToString(math.Round(x*100) / 100) //nolint:mnd // two decimals
	case float32:
		return render(float64(x))
	default:
		return cast.ToString(x)
	}
}

// Write prints t as an aligned table followed by its row count.
func (t *Table) Write(w io.Writer) error {
	title := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if _, err := fmt.Fprintf(w, "%s\n%s\n", title("Report: "+t.Title), strings.Repeat("=", 40)); err != nil {
		return errx.Wrap(err)
	}

	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return errx.Wrap(err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return errx.Wrap(err)
	}

	_, err := fmt.Fprintln(w, dim(fmt.Sprintf("\nTotal records: %d", len(t.Rows))))
	return errx.Wrap(err)
}
