package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/pkg/utils"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type categoryInfo struct {
	Key    models.StatCategory `json:"key"`
	Label  string              `json:"label"`
	Impact bool                `json:"impact,omitempty"`
}

// ListCategories returns every selectable category with its display label,
// flagging the fixed impact set.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	impact := make(map[models.StatCategory]bool, len(models.ImpactCategories))
	for _, cat := range models.ImpactCategories {
		impact[cat] = true
	}

	infos := make([]categoryInfo, 0, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		infos = append(infos, categoryInfo{Key: cat, Label: cat.Label(), Impact: impact[cat]})
	}
	utils.SendSuccess(c, infos)
}
