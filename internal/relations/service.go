package relations

import (
	"context"
	"errors"

	"fitmatch/backend/internal/models"
	"fitmatch/backend/pkg/logger"

	"gorm.io/gorm"
)

// StatusNone is the effective status reported when no relationship exists
// between two parties, or when the only rows between them are undone.
const StatusNone = models.RelationStatus("none")

// Service enforces the request state machine:
//
//	none/undone --request--> pending --approve--> accepted
//	                         pending --reject---> rejected
//	                         pending --undo-----> undone
//	accepted/rejected --undo/re-request--> new cycle
//
// Approve and reject are authorized for the approval authority only (the
// target user for buddy requests, the group organizer for join requests);
// request and undo are authorized for the subject only.
type Service struct {
	store   Store
	db      *gorm.DB
	publish func(*models.Relationship)
}

// NewService creates a Service. publish may be nil; when set it is invoked
// after every committed transition so connected clients see state changes
// without polling.
func NewService(store Store, db *gorm.DB, publish func(*models.Relationship)) *Service {
	return &Service{store: store, db: db, publish: publish}
}

// Request starts a request cycle from subject to target. An inactive row for
// the same directed pair is re-opened instead of duplicated; an active row
// in either direction fails with ErrAlreadyRequested.
func (s *Service) Request(ctx context.Context, actorID uint, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error) {
	if subjectID == 0 || targetID == 0 {
		return nil, ErrValidation
	}
	if actorID != subjectID {
		return nil, ErrUnauthorized
	}
	if kind == models.KindBuddy && subjectID == targetID {
		return nil, ErrSelfRequest
	}

	if err := s.checkTarget(ctx, kind, subjectID, targetID); err != nil {
		return nil, err
	}

	existing, err := s.store.FindEitherDirection(ctx, kind, subjectID, targetID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status.Active() {
		return nil, ErrAlreadyRequested
	}

	var rel *models.Relationship
	if existing != nil && existing.SubjectID == subjectID {
		rel, err = s.store.Reopen(ctx, existing.ID)
	} else {
		rel, err = s.store.Create(ctx, kind, subjectID, targetID)
	}
	if err != nil {
		return nil, err
	}

	s.notify(rel)
	return rel, nil
}

// Approve accepts a pending request. For group joins the membership side
// effects are applied in the same transaction as the status change.
func (s *Service) Approve(ctx context.Context, actorID, id uint) (*models.Relationship, error) {
	rel, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, rel); err != nil {
		return nil, err
	}

	var updated *models.Relationship
	if rel.Kind == models.KindGroup {
		updated, err = s.store.ApproveGroupJoin(ctx, id)
	} else {
		updated, err = s.store.TransitionFromPending(ctx, id, models.StatusAccepted)
	}
	if err != nil {
		return nil, err
	}

	s.notify(updated)
	return updated, nil
}

// Reject declines a pending request. The row stays rejected until the
// subject starts a new cycle.
func (s *Service) Reject(ctx context.Context, actorID, id uint) (*models.Relationship, error) {
	rel, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, rel); err != nil {
		return nil, err
	}

	updated, err := s.store.TransitionFromPending(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}

	s.notify(updated)
	return updated, nil
}

// Undo withdraws the subject's side of the relationship, resetting it so a
// new cycle may start. Only an active row can be undone. Undoing an accepted
// group join also reverts the membership side effects, in the same
// transaction as the status change.
func (s *Service) Undo(ctx context.Context, actorID uint, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error) {
	if subjectID == 0 || targetID == 0 {
		return nil, ErrValidation
	}
	if actorID != subjectID {
		return nil, ErrUnauthorized
	}

	rel, err := s.store.FindByPair(ctx, kind, subjectID, targetID)
	if err != nil {
		return nil, err
	}
	if !rel.Status.Active() {
		return nil, ErrNotFound
	}

	var updated *models.Relationship
	if rel.Kind == models.KindGroup && rel.Status == models.StatusAccepted {
		updated, err = s.store.UndoGroupJoin(ctx, rel.ID)
	} else {
		updated, err = s.store.UpdateStatus(ctx, rel.ID, models.StatusUndone)
	}
	if err != nil {
		return nil, err
	}

	s.notify(updated)
	return updated, nil
}

// EffectiveStatus is the direction-agnostic current state between two
// parties; undone rows and missing rows both report StatusNone.
func (s *Service) EffectiveStatus(ctx context.Context, kind models.RelationKind, a, b uint) (models.RelationStatus, *models.Relationship, error) {
	if a == 0 || b == 0 {
		return StatusNone, nil, ErrValidation
	}

	rel, err := s.store.FindEitherDirection(ctx, kind, a, b)
	if errors.Is(err, ErrNotFound) {
		return StatusNone, nil, nil
	}
	if err != nil {
		return StatusNone, nil, err
	}
	if rel.Status == models.StatusUndone {
		return StatusNone, rel, nil
	}
	return rel.Status, rel, nil
}

// PendingForAuthority lists pending requests the actor can answer: buddy
// requests targeting them plus join requests for groups they organize.
func (s *Service) PendingForAuthority(ctx context.Context, actorID uint) ([]*models.Relationship, error) {
	pending, err := s.store.ListByTarget(ctx, models.KindBuddy, actorID, models.StatusPending)
	if err != nil {
		return nil, err
	}

	var groupIDs []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Group{}).
		Where("organizer_id = ?", actorID).
		Pluck("id", &groupIDs).Error; err != nil {
		return nil, err
	}

	for _, groupID := range groupIDs {
		rels, err := s.store.ListByTarget(ctx, models.KindGroup, groupID, models.StatusPending)
		if err != nil {
			return nil, err
		}
		pending = append(pending, rels...)
	}
	return pending, nil
}

// ListForUser lists the viewer's relationships filtered by status and
// direction ("incoming", "outgoing", or both when empty).
func (s *Service) ListForUser(ctx context.Context, userID uint, status models.RelationStatus, direction string) ([]*models.Relationship, error) {
	return s.store.ListForUser(ctx, userID, status, direction)
}

func (s *Service) checkTarget(ctx context.Context, kind models.RelationKind, subjectID, targetID uint) error {
	switch kind {
	case models.KindBuddy:
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	case models.KindGroup:
		var group models.Group
		if err := s.db.WithContext(ctx).First(&group, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if group.OrganizerID == subjectID {
			return ErrSelfRequest
		}
	default:
		return ErrValidation
	}
	return nil
}

// authorize resolves the approval authority for rel and checks the actor
// against it.
func (s *Service) authorize(ctx context.Context, actorID uint, rel *models.Relationship) error {
	switch rel.Kind {
	case models.KindBuddy:
		if rel.TargetID != actorID {
			return ErrUnauthorized
		}
	case models.KindGroup:
		var group models.Group
		if err := s.db.WithContext(ctx).First(&group, rel.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if group.OrganizerID != actorID {
			return ErrUnauthorized
		}
	default:
		return ErrValidation
	}
	return nil
}

func (s *Service) notify(rel *models.Relationship) {
	if s.publish == nil || rel == nil {
		return
	}
	s.publish(rel)
	logger.Debug("relationship transition published",
		"id", rel.ID, "kind", rel.Kind, "status", rel.Status)
}
