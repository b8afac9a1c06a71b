package db

import (
	"fmt"
	"net/url"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"taskmanager/internal/config"
)

// ConnectDB opens and pings the configured database. Postgres goes through
// the pgx stdlib driver, registered as "pgx".
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch conf.DbDriver {
	case config.DriverMySQL:
		db, err = sqlx.Connect("mysql", mysqlDSN(conf))
	case config.DriverPostgres:
		db, err = sqlx.Connect("pgx", postgresDSN(conf))
	case config.DriverSQLite:
		db, err = sqlx.Connect("sqlite3", sqliteDSN(conf))
		if err == nil {
			// sqlite serialises writers anyway; one connection keeps
			// in-memory databases shared across queries.
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", conf.DbDriver, err)
	}

	return db, nil
}

func mysqlDSN(conf *config.Config) string {
	if conf.DbDSN != "" {
		return conf.DbDSN
	}
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&loc=UTC"
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}

func postgresDSN(conf *config.Config) string {
	if conf.DbDSN != "" {
		return conf.DbDSN
	}
	params := conf.DbParams
	if params == "" {
		params = "sslmode=disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.DbUser, conf.DbPassword),
		Host:     conf.DbHost + ":" + conf.DbPort,
		Path:     "/" + conf.DbName,
		RawQuery: params,
	}
	return u.String()
}

func sqliteDSN(conf *config.Config) string {
	if conf.DbDSN != "" {
		return conf.DbDSN
	}
	name := conf.DbName
	if name == "" {
		name = "taskmanager.db"
	}
	params := conf.DbParams
	if params == "" {
		params = "_fk=1"
	}
	return "file:" + name + "?" + params
}
