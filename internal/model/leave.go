package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveStatus represents the review state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusRejected LeaveStatus = "Rejected"
)

// Leave type categories offered to employees.
const (
	LeaveTypeStudy    = "Study Leave"
	LeaveTypeExam     = "Exam Leave"
	LeaveTypeMedical  = "Medical Leave"
	LeaveTypeAnnual   = "Annual Leave"
	LeaveTypeParental = "Parental Leave"
)

// Leave duration units. Two half days on the same date count as one full
// day for availability purposes.
const (
	LeaveTimeHalfDay = "Half Day"
	LeaveTimeFullDay = "Full Day"
)

// DateLayout is the wire and storage format of LeaveDate. Dates are plain
// calendar days compared as ISO strings, never timestamps.
const DateLayout = "2006-01-02"

// Leave represents one request for time off on a specific date.
type Leave struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index"`
	LeaveType    string         `json:"leave_type" gorm:"size:50;not null"`
	LeavePurpose string         `json:"leave_purpose" gorm:"size:500;not null"`
	LeaveTime    string         `json:"leave_time" gorm:"size:20;not null"`
	LeaveDate    string         `json:"leave_date" gorm:"size:10;not null;index"`
	Status       LeaveStatus    `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Leave) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ValidLeaveType reports whether t is one of the offered leave categories.
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeStudy, LeaveTypeExam, LeaveTypeMedical, LeaveTypeAnnual, LeaveTypeParental:
		return true
	}
	return false
}

// ValidLeaveTime reports whether t is a known duration unit.
func ValidLeaveTime(t string) bool {
	return t == LeaveTimeHalfDay || t == LeaveTimeFullDay
}

// ValidLeaveStatus reports whether s is a reviewable status value.
func ValidLeaveStatus(s LeaveStatus) bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// EmployeeName resolves the display name of the owning employee, or ""
// when the relation was not loaded.
func (l *Leave) EmployeeName() string {
	if l.User == nil {
		return ""
	}
	return l.User.FullName
}
