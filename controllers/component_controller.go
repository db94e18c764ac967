package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"cakeshop-service/models"
	"cakeshop-service/repository"

	"github.com/gin-gonic/gin"
)

// ComponentController serves the catalog routes for all four component
// kinds. The kind-to-repository mapping is built once at startup; request
// handling only does a map lookup.
type ComponentController struct {
	repos map[models.ComponentKind]repository.ComponentRepository
}

func NewComponentController(repos map[models.ComponentKind]repository.ComponentRepository) *ComponentController {
	return &ComponentController{repos: repos}
}

type addComponentRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	Desc string `json:"desc" binding:"max=512"`
}

type updateAvailabilityRequest struct {
	Available string `json:"available" binding:"required,oneof=yes no deleted"`
}

type updateDescriptionRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	Desc string `json:"desc" binding:"required,max=512"`
}

func (cc *ComponentController) repo(c *gin.Context) (repository.ComponentRepository, bool) {
	kind := models.ComponentKind(c.Param("kind"))
	repo, ok := cc.repos[kind]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Component kind %q doesn't exist", string(kind))})
		return nil, false
	}
	return repo, true
}

// AddComponent registers a catalog component, returning the existing row if
// the name is already taken. New components await approval (available "no").
func (cc *ComponentController) AddComponent(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	var req addComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	comp, err := repo.GetOrCreate(c.Request.Context(), req.Name, req.Desc)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, comp)
}

// GetComponent returns a single component by name.
func (cc *ComponentController) GetComponent(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	comp, err := repo.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comp)
}

// ListComponents returns every component of the kind.
func (cc *ComponentController) ListComponents(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	comps, err := repo.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comps)
}

// UpdateAvailability approves or withdraws a component.
func (cc *ComponentController) UpdateAvailability(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component id"})
		return
	}

	var req updateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := repo.UpdateAvailability(c.Request.Context(), uint(id), models.Availability(req.Available)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// UpdateDescription changes a component's description, addressed by name.
func (cc *ComponentController) UpdateDescription(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	var req updateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := repo.UpdateDesc(c.Request.Context(), req.Name, req.Desc); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Description updated"})
}

// DeleteComponent physically removes a component row. Administrative
// cleanup; withdrawing from the catalog goes through UpdateAvailability.
func (cc *ComponentController) DeleteComponent(c *gin.Context) {
	repo, ok := cc.repo(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component id"})
		return
	}

	if err := repo.Delete(c.Request.Context(), uint(id)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Component deleted"})
}
