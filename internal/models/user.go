package models

import "gorm.io/gorm"

// User represents a registered member looking for workout buddies or groups.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	FullName     string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Gender       string `gorm:"size:20"`
	Bio          string
	City         string `gorm:"size:255"`

	FitnessGoal        string `gorm:"size:50"`  // WeightLoss, MuscleGain, Endurance
	WorkoutPreferences string `gorm:"size:512"` // comma-separated activity types
	AvailableDays      string `gorm:"size:20"`  // EveryDay, Weekdays, Weekends, MWF, TTS
	AvailableTimeSlot  string `gorm:"size:20"`  // Morning, Afternoon, Evening
	ExperienceLevel    string `gorm:"size:20"`  // Beginner, Intermediate, Advanced
	AllowChat          bool   `gorm:"not null;default:false"`
}
