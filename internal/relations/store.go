package relations

import (
	"context"
	"errors"

	"fitmatch/backend/internal/models"

	"gorm.io/gorm"
)

// Store persists Relationship rows. It is the only writer of the
// relationships table; the Service layers transition rules on top of it.
type Store interface {
	Create(ctx context.Context, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error)
	FindByID(ctx context.Context, id uint) (*models.Relationship, error)
	FindByPair(ctx context.Context, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error)
	FindEitherDirection(ctx context.Context, kind models.RelationKind, a, b uint) (*models.Relationship, error)
	UpdateStatus(ctx context.Context, id uint, status models.RelationStatus) (*models.Relationship, error)
	TransitionFromPending(ctx context.Context, id uint, status models.RelationStatus) (*models.Relationship, error)
	Reopen(ctx context.Context, id uint) (*models.Relationship, error)
	ListByTarget(ctx context.Context, kind models.RelationKind, targetID uint, status models.RelationStatus) ([]*models.Relationship, error)
	ListBySubject(ctx context.Context, kind models.RelationKind, subjectID uint, status models.RelationStatus) ([]*models.Relationship, error)
	ListAcceptedFor(ctx context.Context, kind models.RelationKind, userID uint) ([]*models.Relationship, error)
	ListForUser(ctx context.Context, userID uint, status models.RelationStatus, direction string) ([]*models.Relationship, error)
	ApproveGroupJoin(ctx context.Context, id uint) (*models.Relationship, error)
	UndoGroupJoin(ctx context.Context, id uint) (*models.Relationship, error)
}

type store struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed relationship store.
func NewStore(db *gorm.DB) Store { return &store{db: db} }

func (s *store) Create(ctx context.Context, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error) {
	rel := &models.Relationship{
		Kind:      kind,
		SubjectID: subjectID,
		TargetID:  targetID,
		Status:    models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(rel).Error; err != nil {
		// The composite unique index backs the duplicate check against races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRequested
		}
		return nil, err
	}
	return rel, nil
}

func (s *store) FindByID(ctx context.Context, id uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := s.db.WithContext(ctx).First(&rel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *store) FindByPair(ctx context.Context, kind models.RelationKind, subjectID, targetID uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := s.db.WithContext(ctx).
		Where("kind = ? AND subject_id = ? AND target_id = ?", kind, subjectID, targetID).
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// FindEitherDirection resolves the current relationship between two parties
// regardless of who initiated it. When both directions carry rows (possible
// after undo cycles), the active row wins, then the most recently updated.
func (s *store) FindEitherDirection(ctx context.Context, kind models.RelationKind, a, b uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := s.db.WithContext(ctx).
		Where("kind = ? AND ((subject_id = ? AND target_id = ?) OR (subject_id = ? AND target_id = ?))",
			kind, a, b, b, a).
		Order("CASE WHEN status IN ('pending','accepted') THEN 0 ELSE 1 END").
		Order("updated_at DESC").
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *store) UpdateStatus(ctx context.Context, id uint, status models.RelationStatus) (*models.Relationship, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Relationship{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// TransitionFromPending flips a pending row to the given status. The
// conditional update makes concurrent approve/reject race-safe: exactly one
// caller sees an affected row, the loser gets ErrConflict.
func (s *store) TransitionFromPending(ctx context.Context, id uint, status models.RelationStatus) (*models.Relationship, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Relationship{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.FindByID(ctx, id); errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}
	return s.FindByID(ctx, id)
}

// Reopen starts a fresh cycle on a rejected or undone row.
func (s *store) Reopen(ctx context.Context, id uint) (*models.Relationship, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Relationship{}).
		Where("id = ? AND status IN ?", id, []models.RelationStatus{models.StatusRejected, models.StatusUndone}).
		Update("status", models.StatusPending)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.FindByID(ctx, id); errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}
	return s.FindByID(ctx, id)
}

func (s *store) ListByTarget(ctx context.Context, kind models.RelationKind, targetID uint, status models.RelationStatus) ([]*models.Relationship, error) {
	var rels []*models.Relationship
	query := s.db.WithContext(ctx).Where("kind = ? AND target_id = ?", kind, targetID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at").Find(&rels).Error
	return rels, err
}

// ListBySubject lists the subject's outgoing rows. An empty kind matches
// both buddy and group requests.
func (s *store) ListBySubject(ctx context.Context, kind models.RelationKind, subjectID uint, status models.RelationStatus) ([]*models.Relationship, error) {
	var rels []*models.Relationship
	query := s.db.WithContext(ctx).Where("subject_id = ?", subjectID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at").Find(&rels).Error
	return rels, err
}

// ListAcceptedFor lists accepted rows with the user on either side.
func (s *store) ListAcceptedFor(ctx context.Context, kind models.RelationKind, userID uint) ([]*models.Relationship, error) {
	var rels []*models.Relationship
	err := s.db.WithContext(ctx).
		Where("kind = ? AND status = ? AND (subject_id = ? OR target_id = ?)",
			kind, models.StatusAccepted, userID, userID).
		Order("created_at").
		Find(&rels).Error
	return rels, err
}

func (s *store) ListForUser(ctx context.Context, userID uint, status models.RelationStatus, direction string) ([]*models.Relationship, error) {
	var rels []*models.Relationship
	query := s.db.WithContext(ctx)

	switch direction {
	case "incoming":
		query = query.Where("kind = ? AND target_id = ?", models.KindBuddy, userID)
	case "outgoing":
		query = query.Where("subject_id = ?", userID)
	default:
		query = query.Where("subject_id = ? OR (kind = ? AND target_id = ?)", userID, models.KindBuddy, userID)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("created_at").Find(&rels).Error
	return rels, err
}

// ApproveGroupJoin accepts a pending group-join request and applies the
// membership side effects in the same transaction: the subject is appended
// to the group's member list and the member counter is incremented. The
// capacity check and the pending guard both run inside the transaction.
func (s *store) ApproveGroupJoin(ctx context.Context, id uint) (*models.Relationship, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel models.Relationship
		if err := tx.First(&rel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var group models.Group
		if err := tx.First(&group, rel.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if group.MembersCount >= group.MaxMembers {
			return ErrGroupFull
		}

		result := tx.Model(&models.Relationship{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Update("status", models.StatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		member := models.User{Model: gorm.Model{ID: rel.SubjectID}}
		if err := tx.Model(&group).Association("Members").Append(&member); err != nil {
			return err
		}
		return tx.Model(&group).Update("members_count", gorm.Expr("members_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// UndoGroupJoin resets an accepted group join and reverts the membership
// side effects in the same transaction: the subject leaves the member list
// and the counter is decremented. The mirror of ApproveGroupJoin.
func (s *store) UndoGroupJoin(ctx context.Context, id uint) (*models.Relationship, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel models.Relationship
		if err := tx.First(&rel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var group models.Group
		if err := tx.First(&group, rel.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		result := tx.Model(&models.Relationship{}).
			Where("id = ? AND status = ?", id, models.StatusAccepted).
			Update("status", models.StatusUndone)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		member := models.User{Model: gorm.Model{ID: rel.SubjectID}}
		if err := tx.Model(&group).Association("Members").Delete(&member); err != nil {
			return err
		}
		return tx.Model(&group).Update("members_count", gorm.Expr("members_count - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}
