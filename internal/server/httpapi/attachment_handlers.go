package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

type attachmentResponse struct {
	*models.Attachment
	// DownloadURL is a presigned GET URL, present once the upload completed.
	DownloadURL string `json:"download_url,omitempty"`
}

// handleRequestAttachmentUpload records pending metadata and hands back a
// presigned PUT URL; the client uploads the bytes directly to object
// storage and then calls the complete route.
func (s *Server) handleRequestAttachmentUpload(c *fiber.Ctx) error {
	ticketID, err := pathID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	var req attachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return s.renderError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	attachment, uploadURL, err := s.attachments.RequestUpload(c.UserContext(), ticketID, principal(c), req.FileName)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attachment": attachment,
		"upload_url": uploadURL,
	})
}

func (s *Server) handleCompleteAttachmentUpload(c *fiber.Ctx) error {
	if _, err := pathID(c, "id"); err != nil {
		return s.renderError(c, err)
	}
	attachmentID, err := pathID(c, "attachmentID")
	if err != nil {
		return s.renderError(c, err)
	}

	if err := s.attachments.CompleteUpload(c.UserContext(), attachmentID); err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "OK"})
}

func (s *Server) handleListAttachments(c *fiber.Ctx) error {
	ticketID, err := pathID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	list, urls, err := s.attachments.ListForTicket(c.UserContext(), ticketID)
	if err != nil {
		return s.renderError(c, err)
	}

	resp := make([]attachmentResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, attachmentResponse{Attachment: a, DownloadURL: urls[a.ID]})
	}
	return c.JSON(resp)
}
