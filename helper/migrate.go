package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"sparkle/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action, use 'up', 'down', 'drop' or 'step-up'")

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// ConnectionString builds the migrate DSN against the write pool.
func ConnectionString(config *config.Config) string {
	write := config.DB.Postgres.Write

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		write.Username,
		write.Password,
		net.JoinHostPort(write.Host, write.Port),
		getDBName(config, write.Name),
		write.SSLMode,
	)

	if table := config.DB.Postgres.MigrationTable; table != "" {
		dsn += "&x-migrations-table=" + table
	}

	return dsn
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, ConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action Action) error {
	var run func(*migrate.Migrate) error

	switch action {
	case ActionUp:
		run = func(m *migrate.Migrate) error { return m.Up() }
	case ActionDown:
		run = func(m *migrate.Migrate) error { return m.Steps(-1) }
	case ActionStepUp:
		run = func(m *migrate.Migrate) error { return m.Steps(1) }
	case ActionDrop:
		run = func(m *migrate.Migrate) error { return m.Down() }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
