package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/services"
)

type BranchHandler struct {
	svc *services.BranchService
}

func NewBranchHandler(svc *services.BranchService) *BranchHandler {
	return &BranchHandler{svc: svc}
}

type BranchRequest struct {
	BranchName string `json:"branch_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	IsActive   *bool  `json:"is_active"`
}

type TableRequest struct {
	BranchID    uint   `json:"branch_id"`
	TableNumber string `json:"table_number"`
	Seats       int    `json:"seats"`
	IsAvailable *bool  `json:"is_available"`
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	branch, err := h.svc.CreateBranch(services.BranchInput{
		BranchName: req.BranchName,
		Address:    req.Address,
		Phone:      req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Branch created", gin.H{"branch": branch})
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.svc.ListBranches()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Branches fetched", gin.H{"branches": branches, "count": len(branches)})
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	branchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	branch, err := h.svc.GetBranch(branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Branch fetched", gin.H{"branch": branch})
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	branchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	branch, err := h.svc.UpdateBranch(branchID, services.BranchInput{
		BranchName: req.BranchName,
		Address:    req.Address,
		Phone:      req.Phone,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Branch updated", gin.H{"branch": branch})
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	branchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteBranch(branchID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Branch deleted", nil)
}

func (h *BranchHandler) CreateTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	table, err := h.svc.CreateTable(services.TableInput{
		BranchID:    req.BranchID,
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Table created", gin.H{"table": table})
}

func (h *BranchHandler) ListTables(c *gin.Context) {
	branchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tables, err := h.svc.ListTables(branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Tables fetched", gin.H{"tables": tables, "count": len(tables)})
}

func (h *BranchHandler) UpdateTable(c *gin.Context) {
	tableID, ok := idParam(c, "tableId")
	if !ok {
		return
	}
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	table, err := h.svc.UpdateTable(tableID, services.TableInput{
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Table updated", gin.H{"table": table})
}

func (h *BranchHandler) DeleteTable(c *gin.Context) {
	tableID, ok := idParam(c, "tableId")
	if !ok {
		return
	}
	if err := h.svc.DeleteTable(tableID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Table deleted", nil)
}
