package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const maxInquiryLength = 5000

// InquiryService sends customer inquiries to tailors and lets tailors work
// through the ones they received.
type InquiryService struct {
	api client.InquiryAPI
	log logging.Logger
}

func NewInquiryService(api client.InquiryAPI, log logging.Logger) *InquiryService {
	if log == nil {
		log = logging.Discard()
	}
	return &InquiryService{api: api, log: log.With("component", "inquiries")}
}

func (s *InquiryService) Send(ctx context.Context, tailorID, subject, message string) (models.Inquiry, error) {
	tailorID = strings.TrimSpace(tailorID)
	req := models.InquiryRequest{Subject: sanitizeText(subject), Message: sanitizeText(message)}

	switch {
	case tailorID == "":
		return models.Inquiry{}, common.NewValidationError("tailorId", "is required")
	case req.Subject == "":
		return models.Inquiry{}, common.NewValidationError("subject", "is required")
	case req.Message == "":
		return models.Inquiry{}, common.NewValidationError("message", "is required")
	case len(req.Message) > maxInquiryLength:
		return models.Inquiry{}, common.NewValidationError("message", fmt.Sprintf("must be at most %d characters", maxInquiryLength))
	}

	inq, err := s.api.SendInquiry(ctx, tailorID, req)
	if err != nil {
		s.log.Warn(ctx, "inquiry rejected", "tailor_id", tailorID, "error", err)
		return models.Inquiry{}, fmt.Errorf("send inquiry: %w", err)
	}
	s.log.Info(ctx, "inquiry sent", "tailor_id", tailorID, "inquiry_id", inq.ID)
	return inq, nil
}

func (s *InquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	list, err := s.api.ListInquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return list, nil
}

func (s *InquiryService) MarkRead(ctx context.Context, id string) (models.Inquiry, error) {
	return s.changeStatus(ctx, id, "mark read", s.api.MarkInquiryRead)
}

func (s *InquiryService) Close(ctx context.Context, id string) (models.Inquiry, error) {
	return s.changeStatus(ctx, id, "close", s.api.CloseInquiry)
}

func (s *InquiryService) changeStatus(ctx context.Context, id, op string, call func(context.Context, string) (models.Inquiry, error)) (models.Inquiry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Inquiry{}, common.NewValidationError("id", "is required")
	}
	inq, err := call(ctx, id)
	if err != nil {
		return models.Inquiry{}, fmt.Errorf("%s inquiry %s: %w", op, id, err)
	}
	s.log.Info(ctx, "inquiry "+op, "inquiry_id", id, "status", string(inq.Status))
	return inq, nil
}
