// Package notification stores outbound notices in a database outbox. The
// main backend's mailer drains the table; this subsystem only enqueues.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/notification"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outbox implements notification.Dispatcher by writing notice rows
type Outbox struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOutbox creates a database-backed notice outbox
func NewOutbox(db *gorm.DB, logger *zap.Logger) *Outbox {
	return &Outbox{db: db, logger: logger}
}

// SendAccountClosure enqueues an account-closure notice
func (o *Outbox) SendAccountClosure(ctx context.Context, notice notification.AccountClosureNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("notification: failed to encode closure notice: %w", err)
	}

	model := models.NotificationModel{
		ID:        uuid.New(),
		UserID:    notice.UserID,
		Kind:      notification.KindAccountClosure,
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}

	if err := o.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("notification: failed to enqueue closure notice: %w", err)
	}

	o.logger.Info("Enqueued account-closure notice",
		zap.String("user_id", notice.UserID.String()),
		zap.String("balance", notice.Balance.String()))

	return nil
}
