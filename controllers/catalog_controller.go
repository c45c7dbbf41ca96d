package controllers

import (
	"net/http"
	"strconv"

	"hotel-billing/config"
	"hotel-billing/models"
	"hotel-billing/services"
	"hotel-billing/utils"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogSvc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{CatalogSvc: svc}
}

func branchIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_branch_id")
		return 0, false
	}
	return uint(id), true
}

func (cc *CatalogController) GetBranches(c *gin.Context) {
	var branches []models.Branch
	if err := config.DB.Order("id ASC").Find(&branches).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, branches)
}

func (cc *CatalogController) GetRooms(c *gin.Context) {
	var rooms []models.Room
	q := config.DB.Preload("RoomType").Order("room_number ASC")
	if branch := c.Query("branchId"); branch != "" {
		q = q.Where("branch_id = ?", branch)
	}
	if err := q.Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (cc *CatalogController) GetServices(c *gin.Context) {
	var servicesList []models.HotelService
	if err := config.DB.Where("is_active = ?", true).Order("name ASC").Find(&servicesList).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, servicesList)
}

// GetBranchServices returns the catalog as the branch sells it: override
// prices where configured, catalog prices otherwise.
func (cc *CatalogController) GetBranchServices(c *gin.Context) {
	id, ok := branchIDParam(c)
	if !ok {
		return
	}
	servicesList, err := cc.CatalogSvc.BranchServices(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, servicesList)
}

func (cc *CatalogController) GetBranchTaxes(c *gin.Context) {
	id, ok := branchIDParam(c)
	if !ok {
		return
	}
	taxes, err := cc.CatalogSvc.ActiveTaxes(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, taxes)
}

func (cc *CatalogController) GetBranchDiscounts(c *gin.Context) {
	id, ok := branchIDParam(c)
	if !ok {
		return
	}
	discounts, err := cc.CatalogSvc.ActiveDiscounts(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, discounts)
}
