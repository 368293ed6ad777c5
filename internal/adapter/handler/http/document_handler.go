package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

// Uploads beyond this size are rejected before touching blob storage.
const maxUploadBytes = 25 << 20

type DocumentHandler struct {
	documents *usecase.DocumentService
	logger    *zap.Logger
}

func NewDocumentHandler(documents *usecase.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		logger:    logger,
	}
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return data, mimeType, nil
}

// UploadDocument accepts a multipart form with a "file" part plus optional
// "title" and "project_id" fields.
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A file part is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "File too large"})
	}

	data, mimeType, err := readUpload(fileHeader)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Could not read uploaded file"})
	}

	input := usecase.UploadDocumentInput{
		Title:    c.FormValue("title"),
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
	}
	if raw := c.FormValue("project_id"); raw != "" {
		projectID, err := parsePositiveQueryInt(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		input.ProjectID = &projectID
	}

	document, err := h.documents.UploadDocument(c.Request().Context(), *actor, input)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, document)
}

func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.documents.DeleteDocument(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	var projectID *int64
	if raw := c.QueryParam("project_id"); raw != "" {
		id, err := parsePositiveQueryInt(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		projectID = &id
	}

	documents, err := h.documents.ListDocuments(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, documents)
}

// UploadImage adds a gallery photo to the project in the path. Multipart
// form with a "file" part and an optional "caption" field.
func (h *DocumentHandler) UploadImage(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A file part is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "File too large"})
	}

	data, mimeType, err := readUpload(fileHeader)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Could not read uploaded file"})
	}

	image, err := h.documents.UploadImage(c.Request().Context(), *actor, usecase.UploadImageInput{
		ProjectID: projectID,
		Caption:   c.FormValue("caption"),
		FileName:  fileHeader.Filename,
		MimeType:  mimeType,
		Data:      data,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, image)
}

func (h *DocumentHandler) DeleteImage(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.documents.DeleteImage(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DocumentHandler) ListImages(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	images, err := h.documents.ListImages(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Failed to list images", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, images)
}
