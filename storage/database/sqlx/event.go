package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/event"
)

const eventColumns = "id, title, description, date, created_by, created_at"

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	evt.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO events ("+eventColumns+") VALUES (:id, :title, :description, :date, :created_by, :created_at)",
		evt,
	)
	if err != nil {
		return event.Event{}, trapErr(err, event.ErrNotFound, "inserting event")
	}
	return evt, nil
}

func (repo *eventRepository) QueryEvents(ctx context.Context) ([]event.Event, error) {
	events := make([]event.Event, 0)
	if err := repo.db.SelectContext(ctx, &events, "SELECT "+eventColumns+" FROM events ORDER BY "+soonestFirst); err != nil {
		return nil, errors.Wrap(err, "selecting events")
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	var evt event.Event
	if err := repo.db.GetContext(ctx, &evt, "SELECT "+eventColumns+" FROM events WHERE id = $1", id); err != nil {
		return event.Event{}, trapErr(err, event.ErrNotFound, "selecting event by ID")
	}
	return evt, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, id string, chg event.Changes) (event.Event, error) {
	// only save set fields
	var evt event.Event
	err := repo.db.GetContext(ctx, &evt, `
		UPDATE events SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			date = COALESCE($4, date)
		WHERE id = $1
		RETURNING `+eventColumns,
		id, null.StringFromPtr(chg.Title), null.StringFromPtr(chg.Description), null.TimeFromPtr(chg.Date),
	)
	if err != nil {
		return event.Event{}, trapErr(err, event.ErrNotFound, "updating event")
	}
	return evt, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return checkAffected(res, event.ErrNotFound, "deleting event")
}
