package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type rosterUpstream interface {
	Roster(ctx context.Context) (models.RosterStructure, error)
	RosterCodes(ctx context.Context) (map[string]string, error)
	SaveRosterCodes(ctx context.Context, codes []models.RosterCode) error
}

// RosterPresets returns the fixed code slots: kindergarten 00{class}{no},
// elementary 2{grade}{class}{no} and middle school 3{grade}{class}{no}.
func RosterPresets() []models.RosterCode {
	presets := make([]models.RosterCode, 0, 150)
	for c := 1; c <= 3; c++ {
		for n := 1; n <= 10; n++ {
			presets = append(presets, models.RosterCode{
				Code:   fmt.Sprintf("00%d%d", c, n),
				Memo:   fmt.Sprintf("Kindergarten class %d #%d", c, n),
				Class:  fmt.Sprintf("Kindergarten %d", c),
				Preset: true,
			})
		}
	}
	for g := 1; g <= 6; g++ {
		for c := 1; c <= 3; c++ {
			for n := 1; n <= 5; n++ {
				presets = append(presets, models.RosterCode{
					Code:   fmt.Sprintf("2%d%d%d", g, c, n),
					Memo:   fmt.Sprintf("Elementary grade %d class %d #%d", g, c, n),
					Class:  fmt.Sprintf("Elementary %d-%d", g, c),
					Preset: true,
				})
			}
		}
	}
	for g := 1; g <= 3; g++ {
		for c := 1; c <= 2; c++ {
			for n := 1; n <= 5; n++ {
				presets = append(presets, models.RosterCode{
					Code:   fmt.Sprintf("3%d%d%d", g, c, n),
					Memo:   fmt.Sprintf("Middle grade %d class %d #%d", g, c, n),
					Class:  fmt.Sprintf("Middle %d-%d", g, c),
					Preset: true,
				})
			}
		}
	}
	return presets
}

// RosterService manages the name to code mapping that anonymises students.
type RosterService struct {
	upstream  rosterUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService instance.
func NewRosterService(upstream rosterUpstream, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RosterService{upstream: upstream, validator: validate, logger: logger}
}

// Codes merges saved assignments into the preset slots and appends saved
// codes that are not presets, ordered by code.
func (s *RosterService) Codes(ctx context.Context) ([]models.RosterCode, error) {
	names, err := s.CodeNames(ctx)
	if err != nil {
		return nil, err
	}

	codes := RosterPresets()
	known := make(map[string]struct{}, len(codes))
	for i := range codes {
		known[codes[i].Code] = struct{}{}
		codes[i].Name = names[codes[i].Code]
	}

	custom := make([]models.RosterCode, 0)
	for code, name := range names {
		if _, ok := known[code]; ok {
			continue
		}
		custom = append(custom, models.RosterCode{Code: code, Name: name})
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i].Code < custom[j].Code })

	return append(codes, custom...), nil
}

// CodeNames returns code to name. When two names share a code the
// alphabetically first name wins.
func (s *RosterService) CodeNames(ctx context.Context) (map[string]string, error) {
	byName, err := s.upstream.RosterCodes(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	byCode := make(map[string]string, len(byName))
	for _, name := range names {
		code := strings.TrimSpace(byName[name])
		if code == "" {
			continue
		}
		if _, taken := byCode[code]; !taken {
			byCode[code] = name
		}
	}
	return byCode, nil
}

// SaveCodes uploads every row that has a name. The upload replaces the whole
// upstream mapping.
func (s *RosterService) SaveCodes(ctx context.Context, req models.RosterCodesRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster codes")
	}

	named := make([]models.RosterCode, 0, len(req.Codes))
	seen := make(map[string]string, len(req.Codes))
	for _, rc := range req.Codes {
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			continue
		}
		code := strings.TrimSpace(rc.Code)
		if other, dup := seen[code]; dup {
			return 0, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("code %s is assigned to both %s and %s", code, other, name))
		}
		seen[code] = name
		named = append(named, models.RosterCode{Code: code, Name: name, Memo: strings.TrimSpace(rc.Memo)})
	}

	if err := s.upstream.SaveRosterCodes(ctx, named); err != nil {
		return 0, err
	}
	s.logger.Info("roster codes replaced", zap.Int("named", len(named)), zap.Int("submitted", len(req.Codes)))
	return len(named), nil
}

// Structure proxies the class roster.
func (s *RosterService) Structure(ctx context.Context) (models.RosterStructure, error) {
	return s.upstream.Roster(ctx)
}
