package main

import (
	"errors"

	"github.com/pressly/goose/v3"

	"github.com/trezcool/edunotify/storage/database"
)

var (
	gooseRunFunc = goose.Run // mockable

	errNoDatabase = errors.New("migrate needs a database: database.inMemory is set")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	if err := database.SetupGoose(); err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db, database.MigrationsDir, args[1:]...)
}
