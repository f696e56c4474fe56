package domain

import (
	"fmt"
	"time"
)

// TaskScheduleKind selects how a TaskSchedule matches dates.
type TaskScheduleKind string

const (
	TaskDaily   TaskScheduleKind = "DAILY"
	TaskWeekly  TaskScheduleKind = "WEEKLY"
	TaskMonthly TaskScheduleKind = "MONTHLY"
	TaskOnce    TaskScheduleKind = "ONCE"
)

// ParseTaskScheduleKind validates a stored schedule kind.
func ParseTaskScheduleKind(s string) (TaskScheduleKind, error) {
	switch TaskScheduleKind(s) {
	case TaskDaily, TaskWeekly, TaskMonthly, TaskOnce:
		return TaskScheduleKind(s), nil
	default:
		return "", fmt.Errorf("unknown task schedule kind %q", s)
	}
}

// TaskSchedule is one date-matching rule of a task. StartsOn/EndsOn bound it when set.
type TaskSchedule struct {
	Kind       TaskScheduleKind `json:"kind"`
	Weekdays   []time.Weekday   `json:"weekdays,omitempty"`
	DayOfMonth int              `json:"dayOfMonth,omitempty"`
	OnDate     *time.Time       `json:"onDate,omitempty"`
	StartsOn   *time.Time       `json:"startsOn,omitempty"`
	EndsOn     *time.Time       `json:"endsOn,omitempty"`
}

// TaskPlan names who is responsible. With rotation members the responsible trio advances weekly.
type TaskPlan struct {
	PrimaryEmpID    string   `json:"primaryEmpId"`
	Backup1EmpID    *string  `json:"backup1EmpId,omitempty"`
	Backup2EmpID    *string  `json:"backup2EmpId,omitempty"`
	RotationMembers []string `json:"rotationMembers,omitempty"`
}

// Task is a recurring duty at a boutique.
type Task struct {
	TaskID     string         `json:"taskId"`
	BoutiqueID string         `json:"boutiqueId"`
	Name       string         `json:"name"`
	IsActive   bool           `json:"isActive"`
	Schedules  []TaskSchedule `json:"schedules"`
	Plan       TaskPlan       `json:"plan"`
}

// AssignmentReason explains who was picked for a task.
type AssignmentReason string

const (
	ReasonPrimary    AssignmentReason = "PRIMARY"
	ReasonBackup1    AssignmentReason = "BACKUP1"
	ReasonBackup2    AssignmentReason = "BACKUP2"
	ReasonUnassigned AssignmentReason = "UNASSIGNED"
)

// TaskAssignment is the outcome of assigning a task on a date.
type TaskAssignment struct {
	TaskID        string           `json:"taskId"`
	TaskName      string           `json:"taskName"`
	BoutiqueID    string           `json:"boutiqueId"`
	Date          string           `json:"date"`
	AssignedEmpID string           `json:"assignedEmpId"`
	AssignedName  string           `json:"assignedName"`
	Reason        AssignmentReason `json:"reason"`
	ReasonNotes   []string         `json:"reasonNotes"`
}
