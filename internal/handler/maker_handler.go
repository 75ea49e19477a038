package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logic"
	"gorm.io/gorm"
)

// MakerHandler 메이커 프로필 API
type MakerHandler struct {
	makerLogic *logic.MakerLogic
}

func NewMakerHandler(db *gorm.DB) *MakerHandler {
	return &MakerHandler{makerLogic: logic.NewMakerLogic(db)}
}

// GetMaker GET /admin/maker/:makerId
func (h *MakerHandler) GetMaker(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("makerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 메이커 ID"})
		return
	}

	maker, err := h.makerLogic.GetMaker(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMaker(maker))
}
