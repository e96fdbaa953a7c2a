package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

const leadEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>New Lead</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; padding: 24px; }
  .header { font-size: 20px; font-weight: 600; margin-bottom: 12px; }
  ul { padding-left: 18px; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">New sales lead</div>
    <ul>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Phone:</strong> %s</li>
      <li><strong>Project:</strong> %s</li>
      <li><strong>Unit:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
  </div>
</body>
</html>`

// LeadNotifierConfig carries the outbound contact points for new-lead
// alerts. Empty fields disable the corresponding channel.
type LeadNotifierConfig struct {
	FromEmail  string
	SalesEmail string
	FromPhone  string
	SalesPhone string
	OrgName    string
}

type LeadService struct {
	leadRepo repositories.LeadRepository
	sgClient *sendgrid.Client
	twClient *twilio.RestClient
	notify   LeadNotifierConfig
}

// NewLeadService wires the CRM side of lead capture. Either client may be
// nil; notification channels without a client are skipped.
func NewLeadService(
	leadRepo repositories.LeadRepository,
	sgClient *sendgrid.Client,
	twClient *twilio.RestClient,
	notify LeadNotifierConfig,
) *LeadService {
	return &LeadService{leadRepo: leadRepo, sgClient: sgClient, twClient: twClient, notify: notify}
}

func (s *LeadService) Create(ctx context.Context, req dtos.CreateLeadRequest) (*models.Lead, error) {
	l := models.Lead{
		ID:          uuid.New(),
		Name:        req.Name,
		Phone:       req.Phone,
		ProjectName: req.ProjectName,
		UnitNumber:  req.UnitNumber,
		Status:      models.LeadStatusNew,
		CreatedAt:   time.Now().UTC(),
	}
	if req.ProjectID != nil {
		id, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid project id", Err: err}
		}
		l.ProjectID = &id
	}
	if req.UnitID != nil {
		id, err := uuid.Parse(*req.UnitID)
		if err != nil {
			return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid unit id", Err: err}
		}
		l.UnitID = &id
	}

	if err := s.leadRepo.Create(ctx, &l); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	// Notifications ride along after the commit; a delivery failure never
	// loses the lead.
	s.notifySalesTeam(&l)

	return &l, nil
}

func (s *LeadService) List(ctx context.Context) ([]*models.Lead, error) {
	return s.leadRepo.List(ctx)
}

func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := s.leadRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, pgx.ErrNoRows) {
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "lead not found"}
	}
	return err
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	l, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load lead: %w", err)
	}
	if l == nil {
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "lead not found"}
	}
	return s.leadRepo.Delete(ctx, id)
}

/* ---------- notifications ---------- */

func (s *LeadService) notifySalesTeam(l *models.Lead) {
	projectName := "-"
	if l.ProjectName != nil {
		projectName = *l.ProjectName
	}
	unitNumber := "-"
	if l.UnitNumber != nil {
		unitNumber = *l.UnitNumber
	}

	if s.sgClient != nil && s.notify.SalesEmail != "" {
		from := mail.NewEmail(s.notify.OrgName+" Lead-Bot", s.notify.FromEmail)
		to := mail.NewEmail("Sales Team", s.notify.SalesEmail)

		subject := fmt.Sprintf("[Lead] %s / %s", l.Name, projectName)
		plainText := fmt.Sprintf("New lead: %s, %s\nProject: %s\nUnit: %s", l.Name, l.Phone, projectName, unitNumber)
		htmlContent := fmt.Sprintf(leadEmailHTML,
			l.Name, l.Phone, projectName, unitNumber,
			time.Now().UTC().Format(time.RFC1123Z),
		)

		msg := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
		if _, err := s.sgClient.Send(msg); err != nil {
			utils.Logger.WithError(err).Error("Lead email notification failed")
		}
	}

	if s.twClient != nil && s.notify.SalesPhone != "" {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(s.notify.SalesPhone)
		params.SetFrom(s.notify.FromPhone)
		params.SetBody(fmt.Sprintf("New lead: %s %s (project %s, unit %s)", l.Name, l.Phone, projectName, unitNumber))
		if _, err := s.twClient.Api.CreateMessage(params); err != nil {
			utils.Logger.WithError(err).Error("Lead SMS notification failed")
		}
	}
}
