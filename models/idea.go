// models/idea.go
package models

import (
	"crypto/rand"
	"math/big"
	"time"
)

// Idea workflow statuses. Every idea starts in Review.
const (
	StatusReview      = "Review"
	StatusPilot       = "Pilot"
	StatusImplemented = "Implemented"
	StatusDeferred    = "Deferred"
)

var StatusValues = []string{StatusReview, StatusPilot, StatusImplemented, StatusDeferred}

func IsValidStatus(status string) bool {
	for _, s := range StatusValues {
		if s == status {
			return true
		}
	}
	return false
}

// Defaults applied to the admin triage section at submission time.
const (
	DefaultOwner = "Unassigned"
	DefaultScore = 5
)

// Idea is one submitted improvement suggestion. The bson tags are the
// internal field names, the json tags are the camelCase wire shape the
// frontend expects.
type Idea struct {
	ID          string    `bson:"_id" json:"id"`
	ReferenceID string    `bson:"reference_id" json:"referenceId"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`

	// Section 1: Identity
	Name        string `bson:"name,omitempty" json:"name"`
	IsAnonymous bool   `bson:"is_anonymous" json:"isAnonymous"`
	Department  string `bson:"department" json:"department"`
	Role        string `bson:"role" json:"role"`
	CanContact  bool   `bson:"can_contact" json:"canContact"`

	// Section 2: Proposition
	Title       string `bson:"title" json:"title"`
	Category    string `bson:"category" json:"category"`
	Description string `bson:"description" json:"description"`

	// Section 3: Impact
	PainPoint     string   `bson:"pain_point" json:"painPoint"`
	ImpactTags    []string `bson:"impact_tags" json:"impactTags"`
	Beneficiaries string   `bson:"beneficiaries" json:"beneficiaries"`

	// Section 4: Feasibility
	Complexity          string `bson:"complexity" json:"complexity"`
	SeenElsewhere       bool   `bson:"seen_elsewhere" json:"seenElsewhere"`
	SeenElsewhereDetail string `bson:"seen_elsewhere_detail,omitempty" json:"seenElsewhereDetail"`
	AdditionalThoughts  string `bson:"additional_thoughts,omitempty" json:"additionalThoughts"`

	// Admin triage
	Status           string    `bson:"status" json:"status"`
	ImpactScore      int       `bson:"impact_score" json:"impactScore"`
	FeasibilityScore int       `bson:"feasibility_score" json:"feasibilityScore"`
	Owner            string    `bson:"owner" json:"owner"`
	InternalNotes    string    `bson:"internal_notes,omitempty" json:"internalNotes"`
	LastUpdated      time.Time `bson:"last_updated" json:"lastUpdated"`
	IsRead           bool      `bson:"is_read" json:"isRead"`
}

const (
	referencePrefix   = "ISIP-"
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 6
)

// NewReferenceID generates a shareable tracking token of the form
// ISIP-XXXXXX. Uniqueness is enforced by the store, not here.
func NewReferenceID() string {
	code := make([]byte, referenceLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		code[i] = referenceAlphabet[n.Int64()]
	}
	return referencePrefix + string(code)
}
