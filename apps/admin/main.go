package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
	"github.com/trezcool/edunotify/storage/database"
	sqlxrepos "github.com/trezcool/edunotify/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	if conf.Database.InMemory {
		logger.Fatal("admin commands need a database: unset database.inMemory")
	}

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// set up services
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	access.InitValidators(validate, translator)
	behavior.InitValidators(validate, translator)
	vldtr := core.NewValidator(validate, translator)

	guard := access.NewGuard()
	repos := sqlxrepos.NewRepos(db)

	// start CLI
	cli := commandLine{
		db:       db.DB,
		out:      os.Stdout,
		users:    user.NewService(repos.Users, guard, vldtr),
		students: student.NewService(repos.Students, repos.Users, guard, vldtr),
		grades:   grade.NewService(repos.Grades, repos.Students, guard, vldtr),
		reports:  behavior.NewService(repos.Reports, repos.Students, guard, vldtr),
		events:   event.NewService(repos.Events, guard, vldtr),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		db.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
