package event

import (
	"context"
	"time"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Event not found")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		// QueryEvents returns every event, by ascending date.
		QueryEvents(ctx context.Context) ([]Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		UpdateEvent(ctx context.Context, id string, chg Changes) (Event, error)
		DeleteEvent(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		guard    *access.Guard
		validate *core.Validator
	}
)

func NewService(repo Repository, guard *access.Guard, validate *core.Validator) *Service {
	return &Service{repo: repo, guard: guard, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context, id access.Identity) ([]Event, error) {
	if _, err := svc.guard.Check(id, access.OpListEvents, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryEvents(ctx)
}

// Create schedules an Event created by the caller.
func (svc *Service) Create(ctx context.Context, id access.Identity, ne NewEvent) (Event, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Event{}, err
	}
	if err := ne.Validate(svc.validate); err != nil {
		return Event{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateEvent, nil); err != nil {
		return Event{}, err
	}
	date, err := core.ParseDate(ne.Date)
	if err != nil {
		return Event{}, err
	}
	return svc.repo.CreateEvent(ctx, Event{
		Title:       ne.Title,
		Description: ne.Description,
		Date:        date,
		CreatedBy:   id.ID,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) Update(ctx context.Context, id access.Identity, eventID string, ue UpdateEvent) (Event, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Event{}, err
	}
	if err := ue.Validate(svc.validate); err != nil {
		return Event{}, err
	}
	if err := svc.authorizeCreator(ctx, id, access.OpUpdateEvent, eventID); err != nil {
		return Event{}, err
	}
	chg := Changes{Title: ue.Title, Description: ue.Description}
	if ue.Date != nil {
		date, err := core.ParseDate(*ue.Date)
		if err != nil {
			return Event{}, err
		}
		chg.Date = &date
	}
	return svc.repo.UpdateEvent(ctx, eventID, chg)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, eventID string) (bool, error) {
	if err := svc.authorizeCreator(ctx, id, access.OpDeleteEvent, eventID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteEvent(ctx, eventID); err != nil {
		return false, err
	}
	return true, nil
}

func (svc *Service) authorizeCreator(ctx context.Context, id access.Identity, op access.Operation, eventID string) error {
	if err := svc.guard.Precheck(id, op); err != nil {
		return err
	}
	evt, err := svc.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	_, err = svc.guard.Check(id, op, access.OwnedBy(evt.CreatedBy))
	return err
}
