package audit

import "time"

// Action names the profile lifecycle moments worth an audit trail.
type Action string

const (
	ActionProfileCreated      Action = "profile_created"
	ActionJurisdictionUpdated Action = "jurisdiction_updated"
	ActionContentUpdated      Action = "content_updated"
	ActionDistrictClaimed     Action = "district_claimed"
	ActionDistrictReleased    Action = "district_released"
	ActionBioCompleted        Action = "bio_completed"
	ActionProfileDeleted      Action = "profile_deleted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	IdentityID  string    `json:"identity_id"`
	Action      Action    `json:"action"`
	DistrictKey string    `json:"district_key,omitempty"`
	Detail      string    `json:"detail,omitempty"`
}
