package renderbriefing

import (
	"context"

	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/display"
)

type RenderService interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	styles display.Styles
	logger logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	return &Service{
		styles: display.PlainStyles(),
		logger: deps.Logger.WithFields(map[string]interface{}{"handler": "render-briefing"}),
	}
}

// Execute never fails on a sparse or missing briefing; absent groups render
// as empty sections.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	b := input.Briefing
	out := &Output{
		Format:   input.Format,
		Content:  display.Render(b, input.Format, s.styles),
		Sections: display.Sections(b),
	}

	if b != nil {
		out.Stats = display.CompatibilityStats(b.SolutionMapping)
		if idx, ok := display.TopSolution(b.SolutionMapping); ok {
			top := b.SolutionMapping[idx]
			out.TopPick = &TopPick{Index: idx, Product: top.Product, Compatibility: top.Compatibility}
		}
	}

	s.logger.Debug("Briefing rendered", map[string]interface{}{
		"format":     input.Format,
		"hasTopPick": out.TopPick != nil,
		"length":     len(out.Content),
	})
	return out, nil
}
