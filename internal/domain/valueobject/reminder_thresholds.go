// Package valueobject contains domain value objects for the Billing Panel system.
package valueobject

// ReminderThresholds are the day-overdue boundaries of the reminder ladder.
// Each boundary is inclusive on the lower side.
type ReminderThresholds struct {
	ReminderDays      int
	FinalReminderDays int
	SuspendDays       int
	ShutdownDays      int
}

// DefaultReminderThresholds returns 3, 7, 15 and 30 days.
func DefaultReminderThresholds() ReminderThresholds {
	return ReminderThresholds{
		ReminderDays:      3,
		FinalReminderDays: 7,
		SuspendDays:       15,
		ShutdownDays:      30,
	}
}

// IsValid reports whether the thresholds are strictly increasing and positive.
func (t ReminderThresholds) IsValid() bool {
	return t.ReminderDays > 0 &&
		t.ReminderDays < t.FinalReminderDays &&
		t.FinalReminderDays < t.SuspendDays &&
		t.SuspendDays < t.ShutdownDays
}
