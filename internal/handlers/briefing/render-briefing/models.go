package renderbriefing

import (
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/display"
	"sales-briefing/internal/models"
)

type Input struct {
	Briefing *models.BriefingResult `json:"briefing"`
	Format   display.Format         `json:"-"`
}

type TopPick struct {
	Index         int    `json:"index"`
	Product       string `json:"product"`
	Compatibility int    `json:"compatibility"`
}

type Output struct {
	Format   display.Format    `json:"format"`
	Content  string            `json:"content"`
	Sections []display.Section `json:"sections"`
	TopPick  *TopPick          `json:"topPick"`
	Stats    display.Stats     `json:"stats"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
