package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/session"
)

type stubComplaintRepo struct {
	createFn      func(ctx context.Context, complaint *domain.Complaint) error
	getByIDFn     func(ctx context.Context, id int64) (*domain.Complaint, error)
	listAllFn     func(ctx context.Context) ([]domain.Complaint, error)
	listByOwnerFn func(ctx context.Context, userID int64) ([]domain.Complaint, error)
}

func (s *stubComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	return s.createFn(ctx, complaint)
}

func (s *stubComplaintRepo) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.listAllFn(ctx)
}

func (s *stubComplaintRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	return s.listByOwnerFn(ctx, userID)
}

type stubResponseRepo struct {
	created          []domain.Response
	listByComplaint  func(ctx context.Context, complaintID int64) ([]domain.Response, error)
	createAndResolve func(ctx context.Context, response *domain.Response) error
}

func (s *stubResponseRepo) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.Response, error) {
	if s.listByComplaint == nil {
		return nil, nil
	}
	return s.listByComplaint(ctx, complaintID)
}

func (s *stubResponseRepo) CreateAndResolve(ctx context.Context, response *domain.Response) error {
	if s.createAndResolve != nil {
		if err := s.createAndResolve(ctx, response); err != nil {
			return err
		}
	}
	s.created = append(s.created, *response)
	return nil
}

func TestRespondRequiresAdmin(t *testing.T) {
	responses := &stubResponseRepo{}
	svc := NewComplaintService(&stubComplaintRepo{}, responses)

	cases := map[string]session.Context{
		"anonymous": session.Anonymous(),
		"regular":   session.NewAuthenticated(3, domain.RoleRegular, "Maria"),
	}
	for name, actor := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Respond(context.Background(), actor, 1, "hi")
			if !errors.Is(err, domain.ErrPermissionDenied) {
				t.Fatalf("expected permission denied, got %v", err)
			}
			if len(responses.created) != 0 {
				t.Fatalf("expected no write, got %d", len(responses.created))
			}
		})
	}
}

func TestRespondAsAdmin(t *testing.T) {
	responses := &stubResponseRepo{}
	svc := NewComplaintService(&stubComplaintRepo{}, responses)

	admin := session.NewAuthenticated(1, domain.RoleAdmin, "Root")
	response, err := svc.Respond(context.Background(), admin, 42, "on it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.ComplaintID != 42 || response.Content != "on it" {
		t.Fatalf("unexpected response: %+v", response)
	}
	if response.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
	if len(responses.created) != 1 {
		t.Fatalf("expected one write, got %d", len(responses.created))
	}
}

func TestListForScopesByRole(t *testing.T) {
	all := []domain.Complaint{{ID: 1}, {ID: 2}}
	own := []domain.Complaint{{ID: 2}}

	var listedOwner int64
	complaints := &stubComplaintRepo{
		listAllFn: func(ctx context.Context) ([]domain.Complaint, error) {
			return all, nil
		},
		listByOwnerFn: func(ctx context.Context, userID int64) ([]domain.Complaint, error) {
			listedOwner = userID
			return own, nil
		},
	}
	svc := NewComplaintService(complaints, &stubResponseRepo{})

	got, err := svc.ListFor(context.Background(), session.NewAuthenticated(9, domain.RoleAdmin, "Root"))
	if err != nil || len(got) != 2 {
		t.Fatalf("admin listing: got %d complaints, err %v", len(got), err)
	}

	got, err = svc.ListFor(context.Background(), session.NewAuthenticated(5, domain.RoleRegular, "Maria"))
	if err != nil || len(got) != 1 {
		t.Fatalf("regular listing: got %d complaints, err %v", len(got), err)
	}
	if listedOwner != 5 {
		t.Fatalf("expected owner scope 5, got %d", listedOwner)
	}
}

func TestFileStampsPendingStatus(t *testing.T) {
	var stored *domain.Complaint
	complaints := &stubComplaintRepo{
		createFn: func(ctx context.Context, complaint *domain.Complaint) error {
			complaint.ID = 10
			stored = complaint
			return nil
		},
	}
	svc := NewComplaintService(complaints, &stubResponseRepo{})

	complaint, err := svc.File(context.Background(), 3, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if complaint.Status != domain.ComplaintStatusPending {
		t.Fatalf("expected pending, got %s", complaint.Status)
	}
	if stored.Subject != "" || stored.Description != "" {
		t.Fatalf("empty fields must be stored verbatim: %+v", stored)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}
