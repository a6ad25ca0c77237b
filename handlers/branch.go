package handlers

import (
	"errors"
	"net/http"

	branchRepo "autoserve/database/repository/branch"
	"autoserve/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchHandler exposes branch management endpoints.
type BranchHandler struct {
	Repo branchRepo.BranchRepository
}

// NewBranchHandler creates a BranchHandler.
func NewBranchHandler(repo branchRepo.BranchRepository) *BranchHandler {
	return &BranchHandler{Repo: repo}
}

// GetAllBranches handles GET /api/branches.
func (h *BranchHandler) GetAllBranches(c *gin.Context) {
	branches, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch branches", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, branches)
}

// GetBranchByID handles GET /api/branches/:branchId.
func (h *BranchHandler) GetBranchByID(c *gin.Context) {
	branch, err := h.Repo.GetByID(c.Request.Context(), c.Param("branchId"))
	if errors.Is(err, branchRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch branch", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, branch)
}

// CreateBranch handles POST /api/branches.
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var branch models.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if branch.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch name is required"})
		return
	}
	branch.ID = uuid.New().String()

	if err := h.Repo.Create(c.Request.Context(), &branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create branch", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// DeleteBranch handles DELETE /api/branches/:branchId.
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("branchId"))
	if errors.Is(err, branchRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete branch", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "branch deleted"})
}
