package models

import "gorm.io/gorm"

// RelationKind distinguishes buddy requests from group-join requests.
type RelationKind string

const (
	// KindBuddy is a user-to-user workout buddy request; the target user
	// holds the approval authority.
	KindBuddy RelationKind = "buddy"

	// KindGroup is a user-to-group join request; the group's organizer
	// holds the approval authority.
	KindGroup RelationKind = "group"
)

// RelationStatus is the state of a membership request.
type RelationStatus string

const (
	// StatusPending means a request has been sent but not yet answered.
	StatusPending RelationStatus = "pending"

	// StatusAccepted means the request was approved; the parties are linked.
	StatusAccepted RelationStatus = "accepted"

	// StatusRejected means the request was declined. A new cycle may be
	// started by re-requesting.
	StatusRejected RelationStatus = "rejected"

	// StatusUndone marks a withdrawn request. Rows are never hard-deleted;
	// undone is the "no active request" terminal marker.
	StatusUndone RelationStatus = "undone"
)

// Active reports whether the status represents a live request or link.
func (s RelationStatus) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

// Terminal reports whether the status ends a request cycle.
func (s RelationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Relationship is a persisted request between a subject (the initiator,
// always a user) and a target (a user for buddy requests, a group for join
// requests). The composite unique index guarantees at most one row per
// directed pair; a fresh cycle re-opens the existing row.
type Relationship struct {
	gorm.Model
	Kind      RelationKind   `gorm:"type:varchar(20);not null;index:idx_relation_pair,unique"`
	SubjectID uint           `gorm:"not null;index:idx_relation_pair,unique"`
	TargetID  uint           `gorm:"not null;index:idx_relation_pair,unique;index:idx_relation_target"`
	Status    RelationStatus `gorm:"type:varchar(20);not null"`
}
