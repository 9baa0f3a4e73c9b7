package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

func (h *Handler) listFamilies(c *gin.Context) {
	var mappingID *int64
	if m := c.Query("mapping_id"); m != "" {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid mapping_id"})
			return
		}
		mappingID = &id
	}

	families, err := h.registry.ListFamilies(c.Request.Context(), mappingID)
	if err != nil {
		h.fail(c, err, "failed to fetch evacuees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"families": families, "selected_mapping_id": mappingID})
}

func (h *Handler) getFamily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.registry.GetFamily(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to fetch evacuee")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) createFamily(c *gin.Context) {
	var f models.Family
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid evacuee payload"})
		return
	}

	created, err := h.registry.CreateFamily(c.Request.Context(), &f)
	if err != nil {
		h.fail(c, err, "failed to add evacuee")
		return
	}
	h.ok(c, http.StatusCreated, "Evacuee added successfully", created)
}

func (h *Handler) updateFamily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var f models.Family
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid evacuee payload"})
		return
	}

	updated, err := h.registry.UpdateFamily(c.Request.Context(), id, &f)
	if err != nil {
		h.fail(c, err, "failed to update evacuee")
		return
	}
	h.ok(c, http.StatusOK, "Evacuee updated successfully", updated)
}

func (h *Handler) deleteFamily(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.registry.DeleteFamily(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to delete evacuee")
		return
	}
	h.deleted(c, found, "Evacuee")
}
