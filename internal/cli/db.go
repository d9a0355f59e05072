package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/domain"
)

func newDBCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage databases in a cluster",
	}
	cmd.AddCommand(
		newDBListCmd(a),
		newDBCreateCmd(a),
		newDBDeleteCmd(a),
		newDBTablesCmd(a),
		newDBTableCreateCmd(a),
		newDBQueryCmd(a),
		newDBInsertCmd(a),
	)
	return cmd
}

func newDBListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			dbs, err := a.gateway().ListDatabases(cmd.Context(), cluster)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(dbs))
			for _, db := range dbs {
				rows = append(rows, []string{db.ID, db.Name, db.Description})
			}
			return a.render([]string{"ID", "Name", "Description"}, rows, dbs)
		},
	}
}

func newDBCreateCmd(a *App) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			db, err := a.gateway().CreateDatabase(cmd.Context(), cluster, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Database %s created: %s\n", db.Name, db.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "database description")
	return cmd
}

func newDBDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <db-id>",
		Short: "Delete a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			if err := a.gateway().DeleteDatabase(cmd.Context(), cluster, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Database %s deleted\n", args[0])
			return nil
		},
	}
}

func newDBTablesCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tables <db-id>",
		Short: "List tables in a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			tables, err := a.gateway().ListTables(cmd.Context(), cluster, args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tables))
			for _, t := range tables {
				cols := make([]string, 0, len(t.Schema))
				for _, c := range t.Schema {
					cols = append(cols, c.Name)
				}
				rows = append(rows, []string{t.Name, t.PrimaryKey, strings.Join(cols, ",")})
			}
			return a.render([]string{"Name", "Primary Key", "Columns"}, rows, tables)
		},
	}
}

// parseColumn parses a --column value of the form
// name:type[:required][:unique][:indexed].
func parseColumn(s string) (domain.ColumnSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.ColumnSpec{}, fmt.Errorf("invalid --column %q, want name:type[:required][:unique][:indexed]", s)
	}
	col := domain.ColumnSpec{Name: parts[0], Type: parts[1]}
	for _, attr := range parts[2:] {
		switch attr {
		case "required":
			col.Required = true
		case "unique":
			col.Unique = true
		case "indexed":
			col.Indexed = true
		default:
			return domain.ColumnSpec{}, fmt.Errorf("unknown column attribute %q in %q", attr, s)
		}
	}
	return col, nil
}

func newDBTableCreateCmd(a *App) *cobra.Command {
	var (
		name       string
		primaryKey string
		columns    []string
	)
	cmd := &cobra.Command{
		Use:   "table-create <db-id>",
		Short: "Create a table with an ordered column schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			spec := domain.TableSpec{Name: name, PrimaryKey: primaryKey}
			for _, c := range columns {
				col, err := parseColumn(c)
				if err != nil {
					return err
				}
				spec.Schema = append(spec.Schema, col)
			}
			if err := a.gateway().CreateTable(cmd.Context(), cluster, args[0], spec); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Table %s created\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "table name")
	cmd.Flags().StringVar(&primaryKey, "primary-key", "id", "primary key column")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "column name:type[:required][:unique][:indexed] (repeatable)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDBQueryCmd(a *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "query <db-id> <table>",
		Short: "Query rows from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			rows, err := a.gateway().Query(cmd.Context(), cluster, args[0], args[1], limit)
			if err != nil {
				return err
			}
			header, cells := rowTable(rows)
			return a.render(header, cells, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to return")
	return cmd
}

// rowTable flattens schemaless rows into a table. Columns are the
// union of keys across rows, sorted for stable output.
func rowTable(rows []domain.Row) ([]string, [][]string) {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	header := make([]string, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	sort.Strings(header)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, len(header))
		for i, k := range header {
			cell[i] = cellString(row[k])
		}
		cells = append(cells, cell)
	}
	return header, cells
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

func newDBInsertCmd(a *App) *cobra.Command {
	var rowJSON []string
	cmd := &cobra.Command{
		Use:   "insert <db-id> <table>",
		Short: "Insert rows into a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			rows := make([]domain.Row, 0, len(rowJSON))
			for _, raw := range rowJSON {
				var row domain.Row
				if err := json.Unmarshal([]byte(raw), &row); err != nil {
					return fmt.Errorf("invalid --row %q: %w", raw, err)
				}
				rows = append(rows, row)
			}
			if len(rows) == 0 {
				return fmt.Errorf("no rows given: pass at least one --row")
			}
			ids, err := a.gateway().Insert(cmd.Context(), cluster, args[0], args[1], rows)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(a.Out, id)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rowJSON, "row", nil, "row as a JSON object (repeatable, order kept)")
	return cmd
}
