package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"isip/store"
	"isip/utils"
)

// TrackIdea is the anonymous status lookup: anyone holding a reference
// token can fetch that one idea, nothing else.
func TrackIdea(w http.ResponseWriter, r *http.Request) {
	refID := mux.Vars(r)["refID"]

	idea, err := ideaStore.GetByReferenceID(r.Context(), refID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Reference token not found")
			return
		}
		log.Printf("track lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, idea)
}
