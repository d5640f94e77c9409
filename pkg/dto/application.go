package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// StringList accepts either a JSON string or an array of strings.
// A form with one selected health condition submits a bare string;
// the stored payload is always an array.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

type SubmitApplicationRequest struct {
	PolicyID         uuid.UUID  `json:"policy_id"`
	ApplicantName    string     `json:"applicant_name"`
	Address          string     `json:"address"`
	NID              string     `json:"nid"`
	Phone            string     `json:"phone"`
	NomineeName      string     `json:"nominee_name"`
	NomineeRelation  string     `json:"nominee_relation"`
	HealthConditions StringList `json:"health_conditions"`
	CoverageAmount   float64    `json:"coverage_amount"`
	DurationYears    int        `json:"duration_years"`
	Smoker           bool       `json:"smoker"`
	PremiumFrequency string     `json:"premium_frequency"`
}

type InsertedIDResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

type UpdateStatusRequest struct {
	Status            string  `json:"status"`
	RejectionFeedback *string `json:"rejectionFeedback,omitempty"`
}

type AssignAgentRequest struct {
	AgentID    uuid.UUID `json:"agentId"`
	AgentName  string    `json:"agentName"`
	AgentEmail string    `json:"agentEmail"`
}
