package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

type auditReader interface {
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// AuditEntry describes a successful admin mutation.
type AuditEntry struct {
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	Values     interface{}
	IP         string
	UserAgent  string
}

// AuditService records admin mutations. With no writer configured it only logs.
type AuditService struct {
	repo   auditWriter
	logger *zap.Logger
}

// NewAuditService constructs an AuditService. repo may be nil when the audit
// trail is disabled.
func NewAuditService(repo auditWriter, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Enabled reports whether entries are persisted.
func (s *AuditService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Record writes entry. Failures are logged and never returned to the caller.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	if s == nil {
		return
	}
	s.logger.Info("admin mutation",
		zap.String("user_id", entry.UserID),
		zap.String("action", entry.Action),
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID),
	)
	if s.repo == nil {
		return
	}

	log := &models.AuditLog{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Resource:  entry.Resource,
		IPAddress: entry.IP,
		UserAgent: entry.UserAgent,
	}
	if entry.ResourceID != "" {
		id := entry.ResourceID
		log.ResourceID = &id
	}
	if entry.Values != nil {
		payload, err := json.Marshal(entry.Values)
		if err != nil {
			s.logger.Warn("audit values not serialisable", zap.String("action", entry.Action), zap.Error(err))
		} else {
			log.NewValues = payload
		}
	}

	if err := s.repo.Create(context.WithoutCancel(ctx), log); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", entry.Action), zap.Error(err))
	}
}

// List returns recent audit entries, newest first. It fails with NotFound
// when the trail is not persisted.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]dto.AuditLogView, error) {
	reader, ok := s.reader()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrDisabled, "audit trail is disabled")
	}
	filter.UserID = strings.TrimSpace(filter.UserID)
	filter.Action = strings.ToUpper(strings.TrimSpace(filter.Action))

	logs, err := reader.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	views := make([]dto.AuditLogView, 0, len(logs))
	for _, log := range logs {
		view := dto.AuditLogView{
			ID:        log.ID,
			UserID:    log.UserID,
			Action:    log.Action,
			Resource:  log.Resource,
			IPAddress: log.IPAddress,
			CreatedAt: log.CreatedAt,
		}
		if log.ResourceID != nil {
			view.ResourceID = *log.ResourceID
		}
		if json.Valid(log.NewValues) {
			view.Values = json.RawMessage(log.NewValues)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *AuditService) reader() (auditReader, bool) {
	if !s.Enabled() {
		return nil, false
	}
	reader, ok := s.repo.(auditReader)
	return reader, ok
}
