package models

import "gorm.io/gorm"

// Group represents a fitness group with an organizer who approves joins.
type Group struct {
	gorm.Model
	Name        string `gorm:"size:255;unique;not null"`
	OrganizerID uint   `gorm:"not null;index"`
	Description string
	Visibility  string `gorm:"size:20;not null;default:'Private'"` // Public, Private

	ActivityGoal  string `gorm:"size:50"`  // WeightLoss, MuscleGain, Endurance
	ActivityTypes string `gorm:"size:512"` // comma-separated
	Address       string `gorm:"size:512"`
	City          string `gorm:"size:255"`
	ZipCode       string `gorm:"size:20"`

	AvailableDays      string `gorm:"size:20"`
	AvailableTimeSlot  string `gorm:"size:20"`
	MinExperienceLevel string `gorm:"size:20"`

	MaxMembers   int `gorm:"not null;default:10"`
	MembersCount int `gorm:"not null;default:1"` // organizer counts as a member

	Organizer User    `gorm:"foreignKey:OrganizerID"`
	Members   []*User `gorm:"many2many:group_members;"`
}
