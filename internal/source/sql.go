package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Open connects to a database with a registered driver: sqlite3 or pgx
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, ConvertDBError(err))
	}
	return db, nil
}

// Query runs query and builds a table from its result set
func Query(ctx context.Context, db *sql.DB, opts Options, query string, args ...interface{}) (*datatable.DataTable, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ConvertDBError(err)
	}
	defer rows.Close()

	dt, err := FromRows(rows, opts)
	if err != nil {
		return nil, err
	}

	opts.logger().Debug("query loaded",
		zap.Int("rows", dt.RowCount()),
		zap.Duration("elapsed", time.Since(start)))
	return dt, nil
}

// FromRows drains rows into a table. It does not close rows.
func FromRows(rows *sql.Rows, opts Options) (*datatable.DataTable, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, ConvertDBError(err)
	}
	if len(colTypes) == 0 {
		return nil, ErrEmptySource
	}

	var records [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(colTypes))
		ptrs := make([]interface{}, len(colTypes))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, ConvertDBError(err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, ConvertDBError(err)
	}

	names := make([]string, len(colTypes))
	types := make([]datatable.ColumnType, len(colTypes))
	for i, ct := range colTypes {
		names[i] = ct.Name()
		types[i] = columnTypeFor(ct.Name(), ct.DatabaseTypeName(), i, records, opts)
	}

	dt := opts.newTable()
	if err := addColumns(dt, names, types); err != nil {
		return nil, err
	}

	for _, rec := range records {
		for i, v := range rec {
			rec[i] = coerce(types[i], v)
		}
		if err := dt.AddRow(rec); err != nil {
			return nil, err
		}
	}

	return dt, nil
}

func columnTypeFor(name, dbType string, index int, records [][]interface{}, opts Options) datatable.ColumnType {
	if t, ok := opts.Types[name]; ok {
		return t
	}
	if t, ok := typeForDatabaseName(dbType); ok {
		return t
	}
	for _, rec := range records {
		if rec[index] != nil {
			return inferType(rec[index])
		}
	}
	return datatable.TypeString
}

// typeForDatabaseName maps declared SQL types as reported by sqlite3 and pgx
func typeForDatabaseName(name string) (datatable.ColumnType, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimSuffix(name, " UNSIGNED")

	switch name {
	case "":
		return 0, false
	case "BOOL", "BOOLEAN":
		return datatable.TypeBoolean, true
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "SMALLINT", "BIGINT", "TINYINT", "MEDIUMINT",
		"REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "DOUBLE PRECISION", "NUMERIC", "DECIMAL":
		return datatable.TypeNumber, true
	case "DATE":
		return datatable.TypeDate, true
	case "DATETIME", "TIMESTAMP", "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE", "TIMESTAMP WITHOUT TIME ZONE":
		return datatable.TypeDateTime, true
	case "TIME", "TIMETZ", "TIME WITHOUT TIME ZONE":
		return datatable.TypeTimeOfDay, true
	case "TEXT", "VARCHAR", "CHAR", "BPCHAR", "CHARACTER", "CHARACTER VARYING", "NAME", "UUID", "CITEXT", "CLOB":
		return datatable.TypeString, true
	default:
		return 0, false
	}
}

// coerce adapts driver values to what a column accepts. Values that cannot be
// converted pass through unchanged so the table reports the mismatch.
func coerce(typ datatable.ColumnType, v interface{}) interface{} {
	if v == nil {
		return nil
	}

	switch typ {
	case datatable.TypeBoolean:
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
	case datatable.TypeNumber:
		if s, ok := v.(string); ok {
			if f, err := cast.ToFloat64E(s); err == nil {
				return f
			}
		}
	case datatable.TypeString:
		switch t := v.(type) {
		case string:
			return t
		case time.Time:
			return t.Format(time.RFC3339)
		default:
			if s, err := cast.ToStringE(v); err == nil {
				return s
			}
		}
	}
	return v
}

// ConvertDBError classifies driver errors into the package sentinels
func ConvertDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%w: %s", ErrUndefinedTable, pgErr.Message)
		case "42703": // undefined_column
			return fmt.Errorf("%w: %s", ErrUndefinedColumn, pgErr.Message)
		}
		return fmt.Errorf("%w: %s (SQLSTATE %s)", ErrQueryFailed, pgErr.Message, pgErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		switch {
		case strings.HasPrefix(msg, "no such table"):
			return fmt.Errorf("%w: %s", ErrUndefinedTable, msg)
		case strings.HasPrefix(msg, "no such column"):
			return fmt.Errorf("%w: %s", ErrUndefinedColumn, msg)
		}
		return fmt.Errorf("%w: %s", ErrQueryFailed, msg)
	}

	return err
}
