package app

import (
	"embed"
	"errors"

	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"

	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func Migrate(pgUrl string) {
	log.Info("Applying migrations")

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	for connAttempts > 0 {
		mgrt, err = migrate.NewWithSourceInstance("iofs", src, pgUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		connAttempts--
	}

	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return
	}

	log.Info("Migration successful up")
}
