package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/edunotify/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(_ context.Context, evt event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	evt.ID = repo.db.newID()
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryEvents(_ context.Context) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]event.Event, 0, len(repo.db.events))
	for _, evt := range repo.db.events {
		events = append(events, *evt)
	}
	sort.Slice(events, func(i, j int) bool {
		return repo.db.before(events[i].Date, events[j].Date, events[i].ID, events[j].ID)
	})
	return events, nil
}

func (repo *eventRepository) GetEventByID(_ context.Context, id string) (event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if evt, ok := repo.db.events[id]; ok {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) UpdateEvent(_ context.Context, id string, chg event.Changes) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	evt, ok := repo.db.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	if chg.Title != nil {
		evt.Title = *chg.Title
	}
	if chg.Description != nil {
		evt.Description = *chg.Description
	}
	if chg.Date != nil {
		evt.Date = *chg.Date
	}
	return *evt, nil
}

func (repo *eventRepository) DeleteEvent(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.events[id]; !ok {
		return event.ErrNotFound
	}
	repo.db.drop(id)
	delete(repo.db.events, id)
	return nil
}
