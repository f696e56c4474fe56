package dto

// TaskAssignmentsQuery lists who does what on a date.
type TaskAssignmentsQuery struct {
	ScopeQuery
	Date string `form:"date" binding:"required,datekey"`
}

// SendTaskRemindersRequest emits "task due tomorrow" for tasks running the day after Date.
type SendTaskRemindersRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	Date       string `json:"date" binding:"required,datekey"`
}

// TaskRemindersResponse reports how many reminders were handed to the notifier.
type TaskRemindersResponse struct {
	DueDate string `json:"dueDate"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
}
