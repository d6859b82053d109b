package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type bipUpstream interface {
	GetBIP(ctx context.Context, code string) (models.BIP, error)
	SaveBIP(ctx context.Context, b models.BIP) error
	AIBIPFull(ctx context.Context, code string, req models.BIPAIRequest) (json.RawMessage, error)
	AIBIPHypothesis(ctx context.Context, code string) (string, error)
	AIBIPStrategies(ctx context.Context, code string, req models.BIPStrategiesRequest) (string, error)
}

// BIPService edits behavior intervention plans and merges AI drafts into them.
type BIPService struct {
	upstream  bipUpstream
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewBIPService constructs a BIPService instance.
func NewBIPService(upstream bipUpstream, validate *validator.Validate, logger *zap.Logger) *BIPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BIPService{upstream: upstream, validator: validate, logger: logger, now: time.Now}
}

// Get returns the student's plan. A student without a plan gets an empty one.
func (s *BIPService) Get(ctx context.Context, code string) (models.BIP, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.BIP{}, appErrors.Clone(appErrors.ErrValidation, "student code is required")
	}
	plan, err := s.upstream.GetBIP(ctx, code)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return models.BIP{StudentCode: code}, nil
		}
		return models.BIP{}, err
	}
	if plan.StudentCode == "" {
		plan.StudentCode = code
	}
	return plan, nil
}

// Save writes the whole plan, stamped with today's date and the author.
func (s *BIPService) Save(ctx context.Context, code string, plan models.BIP, author string) (models.BIP, error) {
	code = strings.TrimSpace(code)
	if plan.StudentCode == "" {
		plan.StudentCode = code
	}
	if plan.StudentCode != code {
		return models.BIP{}, appErrors.Clone(appErrors.ErrValidation, "student code mismatch")
	}
	if err := s.validator.Struct(plan); err != nil {
		return models.BIP{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan")
	}
	plan.UpdatedAt = s.now().Format(models.DateLayout)
	plan.Author = author
	if err := s.upstream.SaveBIP(ctx, plan); err != nil {
		return models.BIP{}, err
	}
	return plan, nil
}

// Suggest asks the AI for a full draft and merges it into the editor's draft,
// or the saved plan when no draft is sent. Nothing is saved.
func (s *BIPService) Suggest(ctx context.Context, code string, req models.BIPSuggestRequest) (*models.BIPSuggestion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student code is required")
	}
	if err := s.validator.Struct(req.BIPAIRequest); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid AI request")
	}

	var raw json.RawMessage
	base, err := s.withBase(ctx, code, req.Draft, func(gctx context.Context) error {
		analysis, err := s.upstream.AIBIPFull(gctx, code, req.BIPAIRequest)
		raw = analysis
		return err
	})
	if err != nil {
		return nil, err
	}

	sections, text := DecodeBIPAnalysis(raw)
	if len(sections) == 0 {
		s.logger.Info("AI draft had no recognised sections", zap.String("student_code", code))
	}
	return &models.BIPSuggestion{
		Raw:     text,
		Matched: sections,
		Merged:  MergeBIP(base, sections),
	}, nil
}

// SuggestHypothesis drafts sections 1-3 and merges them into the editor's
// draft, or the saved plan when no draft is sent. Nothing is saved.
func (s *BIPService) SuggestHypothesis(ctx context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student code is required")
	}

	var text string
	base, err := s.withBase(ctx, code, req.Draft, func(gctx context.Context) error {
		draft, err := s.upstream.AIBIPHypothesis(gctx, code)
		text = draft
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.stageSuggestion(code, base, text, bipHypothesisFields, 0), nil
}

// SuggestStrategies drafts sections 4-7 from the plan's first three sections.
// At least a target behavior or a hypothesis must be written first.
func (s *BIPService) SuggestStrategies(ctx context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student code is required")
	}

	base, err := s.withBase(ctx, code, req.Draft, nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(base.TargetBehavior) == "" && strings.TrimSpace(base.Hypothesis) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "write the target behavior or hypothesis before asking for strategies")
	}

	text, err := s.upstream.AIBIPStrategies(ctx, code, models.BIPStrategiesRequest{
		TargetBehavior: base.TargetBehavior,
		Hypothesis:     base.Hypothesis,
		Goals:          base.Goals,
	})
	if err != nil {
		return nil, err
	}
	return s.stageSuggestion(code, base, text, bipStrategyFields, len(bipHypothesisFields)), nil
}

func (s *BIPService) stageSuggestion(code string, base models.BIP, text string, fields []string, offset int) *models.BIPSuggestion {
	sections := splitStageSections(text, fields, offset)
	if len(sections) == 0 {
		s.logger.Info("AI assist had no recognised sections", zap.String("student_code", code))
	}
	return &models.BIPSuggestion{Raw: text, Matched: sections, Merged: MergeBIP(base, sections)}
}

// withBase resolves the plan a suggestion merges into while call runs
// alongside it. A sent draft is used as is; otherwise the saved plan is fetched.
func (s *BIPService) withBase(ctx context.Context, code string, draft *models.BIP, call func(ctx context.Context) error) (models.BIP, error) {
	var base models.BIP
	g, gctx := errgroup.WithContext(ctx)
	if call != nil {
		g.Go(func() error { return call(gctx) })
	}
	if draft != nil {
		base = *draft
		base.StudentCode = code
	} else {
		g.Go(func() error {
			plan, err := s.Get(gctx, code)
			if err != nil {
				return err
			}
			base = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.BIP{}, err
	}
	return base, nil
}
