package models

import (
	"time"

	"github.com/google/uuid"
)

// Application and claim statuses. The canonical set shared by every
// consumer; transitions always start at Pending.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Premium payment frequencies.
const (
	FrequencyMonthly = "monthly"
	FrequencyAnnual  = "annual"
)

type Application struct {
	ID                uuid.UUID  `json:"id"`
	PolicyID          uuid.UUID  `json:"policy_id"`
	PolicyTitle       string     `json:"policy_title"`
	ApplicantEmail    string     `json:"applicant_email"`
	ApplicantName     string     `json:"applicant_name"`
	Address           string     `json:"address"`
	NID               string     `json:"nid"`
	Phone             string     `json:"phone"`
	NomineeName       string     `json:"nominee_name"`
	NomineeRelation   string     `json:"nominee_relation"`
	HealthConditions  []string   `json:"health_conditions"`
	Status            string     `json:"status"`
	RejectionFeedback *string    `json:"rejection_feedback,omitempty"`
	AgentID           *uuid.UUID `json:"agent_id,omitempty"`
	AgentName         *string    `json:"agent_name,omitempty"`
	AgentEmail        *string    `json:"agent_email,omitempty"`
	CoverageAmount    float64    `json:"coverage_amount"`
	DurationYears     int        `json:"duration_years"`
	Smoker            bool       `json:"smoker"`
	PremiumFrequency  string     `json:"premium_frequency"`
	PremiumAmount     float64    `json:"premium_amount"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
