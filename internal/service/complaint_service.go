package service

import (
	"context"
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/session"
)

// ComplaintService coordinates complaint use cases. Every call re-reads
// what it needs from the store; no entity is cached across requests.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	responses  repository.ResponseRepository
}

// NewComplaintService builds the service.
func NewComplaintService(complaints repository.ComplaintRepository, responses repository.ResponseRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints, responses: responses}
}

// File creates a complaint owned by the caller. Subject and description
// are stored verbatim, empty strings included; status starts pending.
func (s *ComplaintService) File(ctx context.Context, ownerID int64, subject, description string) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		UserID:      ownerID,
		Subject:     subject,
		Description: description,
		CreatedAt:   time.Now(),
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// ListFor returns all complaints for admins and only the caller's own
// for regular users.
func (s *ComplaintService) ListFor(ctx context.Context, viewer session.Context) ([]domain.Complaint, error) {
	if viewer.IsAdmin() {
		return s.complaints.ListAll(ctx)
	}
	return s.complaints.ListByOwner(ctx, viewer.UserID)
}

// Detail returns a complaint and its responses in insertion order. No
// ownership or authentication gate is applied here.
func (s *ComplaintService) Detail(ctx context.Context, id int64) (*domain.Complaint, []domain.Response, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	responses, err := s.responses.ListByComplaint(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return complaint, responses, nil
}

// Respond records an admin reply and resolves the complaint in one
// atomic step. Non-admin callers, anonymous ones included, get
// domain.ErrPermissionDenied and nothing is written.
func (s *ComplaintService) Respond(ctx context.Context, actor session.Context, complaintID int64, content string) (*domain.Response, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}

	response := &domain.Response{
		ComplaintID: complaintID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := s.responses.CreateAndResolve(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}
