package commands

import (
	"fmt"

	"github.com/conduit-lang/chartdata/internal/cli/config"
	"github.com/conduit-lang/chartdata/internal/source"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sqlDrivers = []string{"sqlite3", "pgx"}

func newQueryCommand(a *app) *cobra.Command {
	var (
		out    outputOptions
		driver string
		dsn    string
		types  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a SQL query and render the result as a table",
		Long: `Run a query against SQLite or PostgreSQL and turn the result set into a
table. Column types come from the database where it reports them and from
the first non-null value otherwise. Extra arguments bind to query
placeholders.

The database defaults to database.driver and database.url from the config,
with DATABASE_URL taking precedence over the config file.

Examples:
  chartdata query "SELECT day, total FROM sales" --dsn sales.db
  chartdata query "SELECT * FROM sales WHERE region = $1" North --driver pgx
  chartdata query "SELECT day, total FROM sales" -t day=date -f table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if driver == "" {
				driver = a.cfg.Database.Driver
			}
			if !contains(sqlDrivers, driver) {
				return &nameError{kind: "database driver", name: driver, valid: sqlDrivers}
			}
			if dsn == "" {
				dsn = config.DatabaseURL(a.cfg)
			}
			if dsn == "" {
				return fmt.Errorf("no database configured: pass --dsn or set database.url")
			}

			overrides, err := parseTypeOverrides(types)
			if err != nil {
				return err
			}

			query := args[0]
			queryArgs := make([]interface{}, 0, len(args)-1)
			settings := []string{"query", driver, dsn, overrideSettings(types)}
			for _, arg := range args[1:] {
				queryArgs = append(queryArgs, arg)
				settings = append(settings, arg)
			}

			return a.emit(cmd, &out, []byte(query), settings, func() (*datatable.DataTable, error) {
				db, err := source.Open(cmd.Context(), driver, dsn)
				if err != nil {
					return nil, err
				}
				defer db.Close()

				a.logger.Debug("running query", zap.String("driver", driver), zap.Int("args", len(queryArgs)))
				return source.Query(cmd.Context(), db, source.Options{
					Timezone: a.cfg.Timezone,
					Types:    overrides,
					Logger:   a.logger,
				}, query, queryArgs...)
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&driver, "driver", "", "SQL driver: sqlite3, pgx (default from config)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Data source name (default from DATABASE_URL or config)")
	cmd.Flags().StringToStringVarP(&types, "type", "t", nil, "Override a column type, e.g. -t day=date")

	return cmd
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
