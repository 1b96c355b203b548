package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "Email already registered"
	errInvalidCredentials = "Invalid credentials"
	errUserNotFound       = "User not found"
	errHabitNotFound      = "Habit not found"
	errCheckInNotFound    = "Check-in not found"
	errTimeEntryNotFound  = "Time entry not found"
	errCountHabitOnly     = "Check-ins are only valid for COUNT habits"
	errDurationHabitOnly  = "Time entries are only valid for DURATION habits"
	errSessionTooShort    = "Session must span at least one minute"
)
