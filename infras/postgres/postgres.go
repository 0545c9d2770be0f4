package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"sparkle/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type target struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	read := target{
		name:     "read",
		username: pg.Read.Username,
		password: pg.Read.Password,
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		dbName:   pg.Prefix + pg.Read.Name,
		sslMode:  pg.Read.SSLMode,
	}

	write := target{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		dbName:   pg.Prefix + pg.Write.Name,
		sslMode:  pg.Write.SSLMode,
	}

	return &Connection{
		Read:  connect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// Close releases both pools.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing database pool")
		}
	}
}

// DSN renders the lib/pq connection url for a target.
func (t target) DSN() string {
	sslMode := t.sslMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		t.username,
		t.password,
		net.JoinHostPort(t.host, t.port),
		t.dbName,
		sslMode,
	)
}

func connect(t target, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", t.DSN())
		if err == nil {
			log.
				Info().
				Str("name", t.name).
				Str("host", t.host).
				Str("port", t.port).
				Str("dbName", t.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", t.name).
			Str("host", t.host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", t.name).Msg("Giving up connecting to database")

	return nil
}
