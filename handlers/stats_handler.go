package handlers

import (
	"log"
	"net/http"

	"isip/models"
	"isip/utils"
)

const topDepartmentLimit = 5

// GetStats composes the admin dashboard numbers from the live store
// contents. Nothing here is cached.
func GetStats(w http.ResponseWriter, r *http.Request) {
	total, err := ideaStore.Count(r.Context())
	if err != nil {
		log.Printf("stats count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	counts, err := ideaStore.CountByStatus(r.Context())
	if err != nil {
		log.Printf("stats status breakdown error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	// Fixed shape: every workflow status present, zero-filled.
	byStatus := make(map[string]int64, len(models.StatusValues))
	for _, status := range models.StatusValues {
		byStatus[status] = counts[status]
	}

	topDepartments, err := ideaStore.TopDepartments(r.Context(), topDepartmentLimit)
	if err != nil {
		log.Printf("stats department breakdown error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	if topDepartments == nil {
		topDepartments = []models.DepartmentCount{}
	}

	utils.RespondWithJSON(w, http.StatusOK, models.Stats{
		Total:          total,
		ByStatus:       byStatus,
		TopDepartments: topDepartments,
	})
}
