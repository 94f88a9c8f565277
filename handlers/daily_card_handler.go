package handlers

import (
	"net/http"

	"yoga-flashcards-api/services"

	"github.com/gin-gonic/gin"
)

type DailyCardHandler struct {
	dailyCardService services.DailyCardService
}

func NewDailyCardHandler(dailyCardService services.DailyCardService) *DailyCardHandler {
	return &DailyCardHandler{dailyCardService: dailyCardService}
}

// GetDailyCard is public. An empty card set answers 404 with a message, not
// an error payload; anything else is a server fault.
func (h *DailyCardHandler) GetDailyCard(c *gin.Context) {
	card, err := h.dailyCardService.GetDailyCard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No cards available"})
		return
	}

	c.JSON(http.StatusOK, card)
}
