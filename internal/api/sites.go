package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

func (h *Handler) listSites(c *gin.Context) {
	sites, err := h.registry.ListSites(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to fetch evacuation sites")
		return
	}

	fc := toGeoJSON(sites)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getSite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	site, err := h.registry.GetSite(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to fetch evacuation site")
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *Handler) createSite(c *gin.Context) {
	var site models.Site
	if err := c.ShouldBindJSON(&site); err != nil {
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid site payload"})
		return
	}

	created, err := h.registry.CreateSite(c.Request.Context(), &site)
	if err != nil {
		h.fail(c, err, "failed to create evacuation site")
		return
	}
	h.ok(c, http.StatusCreated, "Evacuation site added successfully", created)
}

func (h *Handler) updateSite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var details models.SiteDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid site payload"})
		return
	}

	site, err := h.registry.UpdateSite(c.Request.Context(), id, details)
	if err != nil {
		h.fail(c, err, "failed to update evacuation site")
		return
	}
	h.ok(c, http.StatusOK, "Evacuation site updated successfully", site)
}

func (h *Handler) deleteSite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.registry.DeleteSite(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to delete evacuation site")
		return
	}
	h.deleted(c, found, "Evacuation site")
}
