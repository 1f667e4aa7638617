package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/edunotify/apps/api/echo"
	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/auth"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/resource"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
	logsvc "github.com/trezcool/edunotify/services/logger"
	metricsvc "github.com/trezcool/edunotify/services/metrics"
	"github.com/trezcool/edunotify/storage/database"
	inmemdb "github.com/trezcool/edunotify/storage/database/inmem"
	sqlxrepos "github.com/trezcool/edunotify/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type Repositories struct {
	dig.Out
	Users    user.Repository
	Students student.Repository
	Courses  course.Repository
	Grades   grade.Repository
	Reports  behavior.Repository
	Events   event.Repository
}

type ServicesParam struct {
	dig.In
	Auth      *auth.Service
	Users     *user.Service
	Students  *student.Service
	Courses   *course.Service
	Grades    *grade.Service
	Behavior  *behavior.Service
	Events    *event.Service
	Resources *resource.Service
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

// newDB returns nil when the in-memory store is configured.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	if conf.Database.InMemory {
		loggerParam.Logger.Warn("using the in-memory store: data is lost on shutdown")
		return nil
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newRepositories(db *sqlx.DB) Repositories {
	if db == nil {
		store := inmemdb.Open()
		return Repositories{
			Users:    inmemdb.NewUserRepository(store),
			Students: inmemdb.NewStudentRepository(store),
			Courses:  inmemdb.NewCourseRepository(store),
			Grades:   inmemdb.NewGradeRepository(store),
			Reports:  inmemdb.NewReportRepository(store),
			Events:   inmemdb.NewEventRepository(store),
		}
	}
	repos := sqlxrepos.NewRepos(db)
	return Repositories{
		Users:    repos.Users,
		Students: repos.Students,
		Courses:  repos.Courses,
		Grades:   repos.Grades,
		Reports:  repos.Reports,
		Events:   repos.Events,
	}
}

func newValidator(validate *validator.Validate, translator ut.Translator) *core.Validator {
	core.InitValidators(validate, translator)
	access.InitValidators(validate, translator)
	behavior.InitValidators(validate, translator)
	return core.NewValidator(validate, translator)
}

func newGuard(metrics *metricsvc.Metrics) *access.Guard {
	return access.NewGuard(metrics)
}

func newAuthenticator(conf *core.Config, tokens *auth.Tokens, users user.Repository) *auth.Authenticator {
	return auth.NewAuthenticator(tokens, users, conf.Server.StrictAuth)
}

func newServerOptions(
	conf *core.Config,
	logger core.Logger,
	metrics *metricsvc.Metrics,
	authn *auth.Authenticator,
	svc ServicesParam,
) *echoapi.Options {
	return &echoapi.Options{
		Conf:          conf,
		Logger:        logger,
		Metrics:       metrics,
		Authenticator: authn,
		Services: echoapi.Services{
			Auth:           svc.Auth,
			Users:          svc.Users,
			Students:       svc.Students,
			Courses:        svc.Courses,
			Grades:         svc.Grades,
			Behavior:       svc.Behavior,
			Events:         svc.Events,
			Resources:      svc.Resources,
			OwnershipFirst: conf.Server.OwnershipFirst,
		},
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRepositories))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(metricsvc.New))
	must(c.Provide(newGuard))
	must(c.Provide(auth.NewTokens))
	must(c.Provide(newAuthenticator))
	must(c.Provide(user.NewService))
	must(c.Provide(auth.NewService))
	must(c.Provide(student.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(behavior.NewService))
	must(c.Provide(event.NewService))
	must(c.Provide(resource.NewService))
	must(c.Provide(newServerOptions))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
