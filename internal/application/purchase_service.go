package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
	"github.com/ecofinds/ecofinds-api/pkg/mailer"
)

// PurchaseService converts carts into immutable purchase records and
// serves purchase history.
type PurchaseService struct {
	Purchases   repo.PurchaseRepository
	Users       repo.UserRepository
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewPurchaseService(purchases repo.PurchaseRepository, users repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *PurchaseService {
	return &PurchaseService{Purchases: purchases, Users: users, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

// Checkout snapshots the cart at current prices into a purchase and clears
// the cart, then enqueues a confirmation email best-effort.
func (s *PurchaseService) Checkout(ctx context.Context, userID string) (*entity.Purchase, error) {
	purchase, err := s.Purchases.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Pub != nil && s.MailEnabled {
		if u, uErr := s.Users.GetByID(ctx, userID); uErr == nil {
			job := mailer.EmailJob{
				To:       u.Email,
				Template: mailer.TemplateOrderConfirmation,
				Data: map[string]any{
					"Username":    u.Username,
					"OrderID":     purchase.ID,
					"TotalAmount": fmt.Sprintf("%.2f", purchase.TotalAmount),
					"ItemCount":   len(purchase.Items),
				},
			}
			if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
				s.Logger.WithError(pErr).WithField("purchase_id", purchase.ID).Warn("confirmation email enqueue failed")
			}
		}
	}
	return purchase, nil
}

// History returns one page of the subject's purchases, newest first, plus
// an aggregate over the full history.
func (s *PurchaseService) History(ctx context.Context, actorID, subjectID string, page, limit int) ([]entity.Purchase, Pagination, repo.PurchaseSummary, error) {
	if actorID != subjectID {
		return nil, Pagination{}, repo.PurchaseSummary{}, ErrForbidden
	}
	page = ClampPage(page)
	limit = ClampLimit(limit)

	purchases, total, err := s.Purchases.ListByUser(ctx, subjectID, page, limit)
	if err != nil {
		return nil, Pagination{}, repo.PurchaseSummary{}, err
	}
	summary, err := s.Purchases.Summary(ctx, subjectID)
	if err != nil {
		return nil, Pagination{}, repo.PurchaseSummary{}, err
	}
	return purchases, paginate(page, limit, total), summary, nil
}
