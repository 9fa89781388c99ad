package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/session"
	"github.com/spec-kit/complaint-desk/pkg/util"
)

// ComplaintsHandler exposes the complaint listing, creation, detail and
// respond endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	sessions   *session.Manager
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService, sessions *session.Manager) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, sessions: sessions}
}

// List handles GET /. Anonymous callers are redirected to login; admins
// see every complaint, regular users only their own.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	viewer := session.FromContext(c)
	if !viewer.Authenticated() {
		return c.Redirect("/login")
	}

	complaints, err := h.complaints.ListFor(c.Context(), viewer)
	if err != nil {
		return err
	}
	return render(c, h.sessions, "index", fiber.Map{"Complaints": complaints})
}

// NewForm handles GET /nuevo_reclamo.
func (h *ComplaintsHandler) NewForm(c *fiber.Ctx) error {
	if !session.FromContext(c).Authenticated() {
		return c.Redirect("/login")
	}
	return render(c, h.sessions, "nuevo_reclamo", nil)
}

// Create handles POST /nuevo_reclamo. Subject and description are
// stored as submitted; empty strings are accepted.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	owner := session.FromContext(c)
	if !owner.Authenticated() {
		return c.Redirect("/login")
	}

	subject := c.FormValue("subject")
	description := c.FormValue("description")
	if _, err := h.complaints.File(c.Context(), owner.UserID, subject, description); err != nil {
		return err
	}

	if err := h.sessions.Flash(c, "success", "Complaint filed"); err != nil {
		return err
	}
	return c.Redirect("/")
}

// Detail handles GET /reclamo/:id. There is deliberately no ownership
// or authentication gate; anyone holding an id can view the complaint.
func (h *ComplaintsHandler) Detail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	complaint, responses, err := h.complaints.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrComplaintNotFound) {
			return util.NewNotFoundPage("complaint")
		}
		return err
	}

	return render(c, h.sessions, "detalle_reclamo", fiber.Map{
		"Complaint": complaint,
		"Responses": responses,
	})
}

// Respond handles POST /responder/:id. Only admins may respond; any
// other caller gets a permission flash and nothing is written. A
// response resolves the complaint in the same transaction.
func (h *ComplaintsHandler) Respond(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	content := c.FormValue("content")
	_, err = h.complaints.Respond(c.Context(), session.FromContext(c), id, content)
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		if err := h.sessions.Flash(c, "danger", "You do not have permission to respond"); err != nil {
			return err
		}
		return c.Redirect("/")
	case errors.Is(err, domain.ErrComplaintNotFound):
		if err := h.sessions.Flash(c, "danger", "Complaint not found"); err != nil {
			return err
		}
		return c.Redirect("/")
	case err != nil:
		return err
	}

	if err := h.sessions.Flash(c, "success", "Response added and complaint marked as resolved"); err != nil {
		return err
	}
	return c.Redirect("/")
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewBadRequestPage("complaint id must be a positive integer")
	}
	return id, nil
}
