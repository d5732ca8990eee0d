package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"relcore/pkg/execution"
	"relcore/pkg/expr"
	"relcore/pkg/logging"
	"relcore/pkg/plan"
	"relcore/pkg/planner"
	"relcore/pkg/tables"
	"relcore/pkg/types"
)

var (
	logLevel    string
	logFormat   string
	metricsAddr string
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "relcore",
	Short: "In-memory relational query execution",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(logging.Config{
			Level:  logging.LogLevel(logLevel),
			Format: logFormat,
		}); err != nil {
			return err
		}
		if metricsAddr != "" {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				if err := http.ListenAndServe(metricsAddr, mux); err != nil {
					logging.Error("metrics endpoint stopped", "error", err)
				}
			}()
			logging.Info("serving metrics", "addr", metricsAddr)
		}
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run showcase queries over sample airline and blog data",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tables.NewTableStore()
		if err := seedAirline(store); err != nil {
			return err
		}
		if err := seedBlog(store); err != nil {
			return err
		}

		exec, err := planner.NewExecutor(store)
		if err != nil {
			return err
		}

		for _, q := range demoQueries() {
			fmt.Println(titleStyle.Render(q.title))
			result, err := exec.Execute(q.plan)
			if err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				continue
			}
			fmt.Print(result.Render())
		}
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the sample tables and their row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tables.NewTableStore()
		if err := seedAirline(store); err != nil {
			return err
		}
		if err := seedBlog(store); err != nil {
			return err
		}

		for _, name := range store.TableNames() {
			tbl, err := store.GetTable(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %d row(s)\n", name, tbl.NumRows())
		}
		return nil
	},
}

type demoQuery struct {
	title string
	plan  *plan.Plan
}

func demoQueries() []demoQuery {
	return []demoQuery{
		{
			title: "Long flights (mileage > 1000), longest first",
			plan: &plan.Plan{
				Table: "flight",
				Filter: expr.NewCompare(types.GreaterThan,
					expr.NewColumn("mileage"), expr.Int(1000)),
				OrderBy: []execution.SortKey{{Column: "mileage", Desc: true}},
			},
		},
		{
			title: "Most booked aircraft among Gold passengers",
			plan: &plan.Plan{
				Table: "booking",
				Joins: []plan.Join{{
					Table: "flight",
					Conditions: []execution.JoinCondition{
						{LeftColumn: "flight_id", RightColumn: "id"},
					},
				}},
				Filter:  expr.Eq("status", types.NewStringField("Gold")),
				GroupBy: []string{"aircraft"},
				Aggregates: []execution.AggregateSpec{
					{Op: execution.Count, Alias: "bookings"},
				},
				OrderBy: []execution.SortKey{
					{Column: "bookings", Desc: true},
					{Column: "aircraft"},
				},
				Limit: plan.LimitOf(3),
			},
		},
		{
			title: "Mileage profile per aircraft",
			plan: &plan.Plan{
				Table:   "flight",
				GroupBy: []string{"aircraft"},
				Aggregates: []execution.AggregateSpec{
					{Op: execution.Count, Alias: "flights"},
					{Op: execution.Avg, Column: "mileage", Alias: "avg_miles"},
					{Op: execution.Max, Column: "mileage", Alias: "longest"},
				},
				OrderBy: []execution.SortKey{{Column: "aircraft"}},
			},
		},
		{
			title: "Authors with more than one published post",
			plan: &plan.Plan{
				Table: "post",
				Joins: []plan.Join{{
					Table: "author",
					Conditions: []execution.JoinCondition{
						{LeftColumn: "author_id", RightColumn: "id"},
					},
				}},
				Filter:  expr.Eq("published", types.NewIntField(1)),
				GroupBy: []string{"name"},
				Aggregates: []execution.AggregateSpec{
					{Op: execution.Count, Alias: "posts"},
				},
				Having: expr.NewCompare(types.GreaterThan,
					expr.NewColumn("posts"), expr.Int(1)),
				OrderBy: []execution.SortKey{{Column: "posts", Desc: true}},
			},
		},
		{
			title: "Posts about databases",
			plan: &plan.Plan{
				Table:  "post",
				Filter: expr.NewLike(expr.NewColumn("title"), "%database%"),
				Projection: []execution.ProjectionItem{
					{Column: "title"},
					{Column: "views"},
				},
			},
		},
	}
}

func seedAirline(store *tables.TableStore) error {
	flights, err := tables.NewTable("flight", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "aircraft", Type: types.StringType},
		{Name: "mileage", Type: types.IntType},
	})
	if err != nil {
		return err
	}
	flightRows := []struct {
		id       int64
		aircraft types.Field
		mileage  int64
	}{
		{1, types.NewStringField("Boeing 747"), 135},
		{2, types.NewStringField("Boeing 777"), 4370},
		{3, types.NewStringField("Airbus A330"), 2078},
		{4, types.NewStringField("Boeing 747"), 1765},
		{5, nil, 531},
	}
	for _, r := range flightRows {
		if err := flights.AppendRow(types.NewIntField(r.id), r.aircraft, types.NewIntField(r.mileage)); err != nil {
			return err
		}
	}
	if err := store.AddTable(flights); err != nil {
		return err
	}

	bookings, err := tables.NewTable("booking", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "flight_id", Type: types.IntType},
		{Name: "status", Type: types.StringType},
	})
	if err != nil {
		return err
	}
	bookingRows := []struct {
		id       int64
		flightID types.Field
		status   string
	}{
		{10, types.NewIntField(1), "Gold"},
		{11, types.NewIntField(1), "Silver"},
		{12, types.NewIntField(2), "Gold"},
		{13, types.NewIntField(4), "Gold"},
		{14, nil, "Gold"},
	}
	for _, r := range bookingRows {
		if err := bookings.AppendRow(types.NewIntField(r.id), r.flightID, types.NewStringField(r.status)); err != nil {
			return err
		}
	}
	return store.AddTable(bookings)
}

func seedBlog(store *tables.TableStore) error {
	authors, err := tables.NewTable("author", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "name", Type: types.StringType},
	})
	if err != nil {
		return err
	}
	for _, a := range []struct {
		id   int64
		name string
	}{
		{1, "Ada"}, {2, "Edgar"}, {3, "Grace"},
	} {
		if err := authors.AppendRow(types.NewIntField(a.id), types.NewStringField(a.name)); err != nil {
			return err
		}
	}
	if err := store.AddTable(authors); err != nil {
		return err
	}

	posts, err := tables.NewTable("post", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "author_id", Type: types.IntType},
		{Name: "title", Type: types.StringType},
		{Name: "views", Type: types.IntType},
		{Name: "published", Type: types.IntType},
	})
	if err != nil {
		return err
	}
	postRows := []struct {
		id, authorID int64
		title        string
		views        types.Field
		published    int64
	}{
		{1, 1, "Thoughts on analytical engines", types.NewIntField(412), 1},
		{2, 2, "A relational model for shared databases", types.NewIntField(9041), 1},
		{3, 2, "Further normalization of databases", types.NewIntField(3127), 1},
		{4, 3, "Compilers and how to trust them", nil, 1},
		{5, 3, "Draft: debugging notes", types.NewIntField(7), 0},
	}
	for _, r := range postRows {
		err := posts.AppendRow(
			types.NewIntField(r.id),
			types.NewIntField(r.authorID),
			types.NewStringField(r.title),
			r.views,
			types.NewIntField(r.published),
		)
		if err != nil {
			return err
		}
	}
	return store.AddTable(posts)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(demoCmd, tablesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
