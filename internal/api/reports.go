package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

// reportForm accepts both multipart forms (with an optional "photo" file)
// and JSON bodies.
type reportForm struct {
	Name             string    `form:"name" json:"name"`
	Age              *int      `form:"age" json:"age"`
	DateMissing      time.Time `form:"date_missing" json:"date_missing" time_format:"2006-01-02"`
	Status           string    `form:"status" json:"status"`
	Gender           *string   `form:"gender" json:"gender"`
	LastSeenLocation *string   `form:"last_seen_location" json:"last_seen_location"`
	Description      *string   `form:"description" json:"description"`
	Address          *string   `form:"address" json:"address"`
	ContactNumber    *string   `form:"contact_number" json:"contact_number"`
}

func (f *reportForm) toReport() *models.Report {
	return &models.Report{
		Name:             f.Name,
		Age:              f.Age,
		DateMissing:      f.DateMissing,
		Status:           f.Status,
		Gender:           f.Gender,
		LastSeenLocation: f.LastSeenLocation,
		Description:      f.Description,
		Address:          f.Address,
		ContactNumber:    f.ContactNumber,
	}
}

var errPhotoTooLarge = errors.New("photo too large")

// formOverhead is the body allowance on top of the photo cap for the other
// form fields and multipart boundaries.
const formOverhead = 1 << 20

// bindReport decodes the report fields and the optional photo. The returned
// cleanup closes the uploaded file.
func (h *Handler) bindReport(c *gin.Context) (*models.Report, *models.Photo, func(), error) {
	noop := func() {}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)

	var form reportForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, noop, errPhotoTooLarge
		}
		return nil, nil, noop, err
	}

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return form.toReport(), nil, noop, nil
	}

	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return form.toReport(), nil, noop, nil
	}
	if err != nil {
		return nil, nil, noop, err
	}
	if fh.Size > h.maxUpload {
		return nil, nil, noop, errPhotoTooLarge
	}
	if fh.Size == 0 {
		return form.toReport(), nil, noop, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, noop, err
	}
	photo := &models.Photo{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        file,
	}
	return form.toReport(), photo, func() { _ = file.Close() }, nil
}

func (h *Handler) badReport(c *gin.Context, err error) {
	msg := "invalid report payload"
	if errors.Is(err, errPhotoTooLarge) {
		msg = fmt.Sprintf("photo exceeds %d MB", h.maxUpload>>20)
	}
	c.JSON(http.StatusBadRequest, Notice{OK: false, Message: msg})
}

func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.registry.ListReports(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to fetch reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) getReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	report, err := h.registry.GetReport(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to fetch report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) createReport(c *gin.Context) {
	report, photo, cleanup, err := h.bindReport(c)
	defer cleanup()
	if err != nil {
		h.badReport(c, err)
		return
	}

	created, err := h.registry.CreateReport(c.Request.Context(), report, photo)
	if err != nil {
		h.fail(c, err, "Failed to submit report.")
		return
	}
	h.ok(c, http.StatusCreated, "Report submitted successfully!", created)
}

func (h *Handler) updateReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	report, photo, cleanup, err := h.bindReport(c)
	defer cleanup()
	if err != nil {
		h.badReport(c, err)
		return
	}

	updated, err := h.registry.UpdateReport(c.Request.Context(), id, report, photo)
	if err != nil {
		h.fail(c, err, "Failed to update report.")
		return
	}
	h.ok(c, http.StatusOK, "Report updated successfully!", updated)
}

func (h *Handler) deleteReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.registry.DeleteReport(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to delete report.")
		return
	}
	h.deleted(c, found, "Record")
}
