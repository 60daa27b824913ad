package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"isip/models"
	"isip/store"
	"isip/utils"
)

const requiredFieldMessage = "this field is required"

// CreateIdeaRequest is the public submission payload. Identity fields
// (id, referenceId, timestamp, lastUpdated) and the admin triage section
// are deliberately absent: clients sending them are silently ignored.
type CreateIdeaRequest struct {
	Name                string   `json:"name"`
	IsAnonymous         bool     `json:"isAnonymous"`
	Department          string   `json:"department"`
	Role                string   `json:"role"`
	CanContact          *bool    `json:"canContact"`
	Title               string   `json:"title"`
	Category            string   `json:"category"`
	Description         string   `json:"description"`
	PainPoint           string   `json:"painPoint"`
	ImpactTags          []string `json:"impactTags"`
	Beneficiaries       string   `json:"beneficiaries"`
	Complexity          string   `json:"complexity"`
	SeenElsewhere       bool     `json:"seenElsewhere"`
	SeenElsewhereDetail string   `json:"seenElsewhereDetail"`
	AdditionalThoughts  string   `json:"additionalThoughts"`
}

func (req CreateIdeaRequest) Validate() map[string]string {
	fieldErrors := map[string]string{}

	required := map[string]string{
		"department":    req.Department,
		"role":          req.Role,
		"title":         req.Title,
		"category":      req.Category,
		"description":   req.Description,
		"painPoint":     req.PainPoint,
		"beneficiaries": req.Beneficiaries,
		"complexity":    req.Complexity,
	}
	for field, value := range required {
		if value == "" {
			fieldErrors[field] = requiredFieldMessage
		}
	}
	return fieldErrors
}

// CreateIdea handles the public submission form. No credential required.
func CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req CreateIdeaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		utils.RespondWithValidationErrors(w, fieldErrors)
		return
	}

	canContact := true
	if req.CanContact != nil {
		canContact = *req.CanContact
	}
	tags := req.ImpactTags
	if tags == nil {
		tags = []string{}
	}

	idea := models.Idea{
		Name:                req.Name,
		IsAnonymous:         req.IsAnonymous,
		Department:          req.Department,
		Role:                req.Role,
		CanContact:          canContact,
		Title:               req.Title,
		Category:            req.Category,
		Description:         req.Description,
		PainPoint:           req.PainPoint,
		ImpactTags:          tags,
		Beneficiaries:       req.Beneficiaries,
		Complexity:          req.Complexity,
		SeenElsewhere:       req.SeenElsewhere,
		SeenElsewhereDetail: req.SeenElsewhereDetail,
		AdditionalThoughts:  req.AdditionalThoughts,

		// Triage section always starts from defaults, whatever the client sent.
		Status:           models.StatusReview,
		ImpactScore:      models.DefaultScore,
		FeasibilityScore: models.DefaultScore,
		Owner:            models.DefaultOwner,
	}

	if err := ideaStore.Create(r.Context(), &idea); err != nil {
		log.Printf("insert idea error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, idea)
}

func ListIdeas(w http.ResponseWriter, r *http.Request) {
	filter := store.IdeaFilter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	}

	ideas, err := ideaStore.List(r.Context(), filter)
	if err != nil {
		log.Printf("list ideas error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ideas")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ideas)
}

func GetIdea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	idea, err := ideaStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		log.Printf("get idea error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, idea)
}

// UpdateIdeaRequest covers both PUT and PATCH: only the fields present in
// the payload are written. Identity fields are not part of the struct, so
// a client cannot alter id, referenceId, timestamp or lastUpdated.
type UpdateIdeaRequest struct {
	Name                *string   `json:"name"`
	IsAnonymous         *bool     `json:"isAnonymous"`
	Department          *string   `json:"department"`
	Role                *string   `json:"role"`
	CanContact          *bool     `json:"canContact"`
	Title               *string   `json:"title"`
	Category            *string   `json:"category"`
	Description         *string   `json:"description"`
	PainPoint           *string   `json:"painPoint"`
	ImpactTags          *[]string `json:"impactTags"`
	Beneficiaries       *string   `json:"beneficiaries"`
	Complexity          *string   `json:"complexity"`
	SeenElsewhere       *bool     `json:"seenElsewhere"`
	SeenElsewhereDetail *string   `json:"seenElsewhereDetail"`
	AdditionalThoughts  *string   `json:"additionalThoughts"`
	Status              *string   `json:"status"`
	ImpactScore         *int      `json:"impactScore"`
	FeasibilityScore    *int      `json:"feasibilityScore"`
	Owner               *string   `json:"owner"`
	InternalNotes       *string   `json:"internalNotes"`
	IsRead              *bool     `json:"isRead"`
}

func (req UpdateIdeaRequest) Validate() map[string]string {
	fieldErrors := map[string]string{}

	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		fieldErrors["status"] = "must be one of Review, Pilot, Implemented, Deferred"
	}

	// Cleared required fields are as invalid as missing ones on create.
	required := map[string]*string{
		"department":    req.Department,
		"role":          req.Role,
		"title":         req.Title,
		"category":      req.Category,
		"description":   req.Description,
		"painPoint":     req.PainPoint,
		"beneficiaries": req.Beneficiaries,
		"complexity":    req.Complexity,
	}
	for field, value := range required {
		if value != nil && *value == "" {
			fieldErrors[field] = "may not be blank"
		}
	}
	return fieldErrors
}

func (req UpdateIdeaRequest) toUpdate() store.IdeaUpdate {
	return store.IdeaUpdate{
		Name:                req.Name,
		IsAnonymous:         req.IsAnonymous,
		Department:          req.Department,
		Role:                req.Role,
		CanContact:          req.CanContact,
		Title:               req.Title,
		Category:            req.Category,
		Description:         req.Description,
		PainPoint:           req.PainPoint,
		ImpactTags:          req.ImpactTags,
		Beneficiaries:       req.Beneficiaries,
		Complexity:          req.Complexity,
		SeenElsewhere:       req.SeenElsewhere,
		SeenElsewhereDetail: req.SeenElsewhereDetail,
		AdditionalThoughts:  req.AdditionalThoughts,
		Status:              req.Status,
		ImpactScore:         req.ImpactScore,
		FeasibilityScore:    req.FeasibilityScore,
		Owner:               req.Owner,
		InternalNotes:       req.InternalNotes,
		IsRead:              req.IsRead,
	}
}

func UpdateIdea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateIdeaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		utils.RespondWithValidationErrors(w, fieldErrors)
		return
	}

	idea, err := ideaStore.Update(r.Context(), id, req.toUpdate())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		log.Printf("update idea error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, idea)
}

func DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := ideaStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		log.Printf("delete idea error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Idea deleted"})
}

// MarkIdeaRead flips is_read, the shortcut the admin inbox uses when a
// submission is opened. An empty body marks the idea read.
func MarkIdeaRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	read := true
	if r.Body != nil && r.ContentLength != 0 {
		var req struct {
			IsRead *bool `json:"isRead"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		if req.IsRead != nil {
			read = *req.IsRead
		}
	}

	idea, err := ideaStore.Update(r.Context(), id, store.IdeaUpdate{IsRead: &read})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		log.Printf("mark read error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, idea)
}

// decodeJSON decodes the request body and writes the 400 itself on
// failure. A type mismatch is reported against the offending field.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		utils.RespondWithValidationErrors(w, map[string]string{typeErr.Field: "invalid type"})
		return err
	}

	utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
	return err
}
