package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services/container"
	"github.com/Anandha-scraper/HarvestChain/internal/error/code"
	"github.com/Anandha-scraper/HarvestChain/internal/error/response"

	"github.com/gin-gonic/gin"
)

// FarmerController handles the public farmer routes
type FarmerController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFarmerController creates a new farmer controller
func NewFarmerController(ctx *gin.Context, container *container.ServiceContainer) *FarmerController {
	return &FarmerController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateFarmerRequest is the registration payload. The Firebase UID arrives
// from the client once the external OTP verification has succeeded.
type CreateFarmerRequest struct {
	FirebaseUID  string   `json:"firebaseUid" example:"fb-uid-8f14e45f"`
	Name         string   `json:"name" example:"Ravi Kumar"`
	PhoneNumber  string   `json:"phoneNumber" example:"+919876543210"`
	Passcode     string   `json:"passcode" example:"1234"`
	AadharNumber string   `json:"aadharNumber" example:"123412341234"`
	Location     string   `json:"location" example:"Thanjavur"`
	CropsGrown   []string `json:"cropsGrown" example:"Rice,Wheat"`
}

// FarmerLoginRequest is the phone+passcode login payload
type FarmerLoginRequest struct {
	PhoneNumber string `json:"phoneNumber" example:"+919876543210"`
	Passcode    string `json:"passcode" example:"1234"`
}

// UpdateCropsRequest replaces the crop list wholesale. The pointer
// distinguishes a missing field from an empty list; an empty list is valid.
type UpdateCropsRequest struct {
	Crops *[]string `json:"crops"`
}

// Mutable farmer fields accepted in update patches, keyed by their JSON name.
// Everything else (passcode, firebaseUid, id, timestamps) is stripped before
// the patch reaches the service.
var farmerPatchFields = map[string]string{
	"name":         "name",
	"phoneNumber":  "phone_number",
	"aadharNumber": "aadhar_number",
	"location":     "location",
	"cropsGrown":   "crops_grown",
}

// buildFarmerPatch translates an incoming JSON patch onto store columns,
// dropping immutable and unknown fields
func buildFarmerPatch(body map[string]interface{}) map[string]interface{} {
	updates := make(map[string]interface{})
	for jsonName, column := range farmerPatchFields {
		value, ok := body[jsonName]
		if !ok {
			continue
		}
		if column == "crops_grown" {
			crops, ok := toStringSlice(value)
			if !ok {
				continue
			}
			value = crops
		}
		updates[column] = value
	}
	return updates
}

// toStringSlice converts a decoded JSON array into []string
func toStringSlice(value interface{}) ([]string, bool) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	crops := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		crops = append(crops, strings.TrimSpace(s))
	}
	return crops, true
}

// HandleFarmerFunc returns a gin handler dispatching to the named method
func HandleFarmerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFarmerController(ctx, container)

		switch method {
		case "createFarmer":
			controller.CreateFarmer()
		case "getFarmerByFirebaseUID":
			controller.GetFarmerByFirebaseUID()
		case "getFarmerByPhone":
			controller.GetFarmerByPhone()
		case "login":
			controller.Login()
		case "updateFarmer":
			controller.UpdateFarmer()
		case "updateCrops":
			controller.UpdateCrops()
		case "deleteFarmer":
			controller.DeleteFarmer()
		case "getAllFarmers":
			controller.GetAllFarmers()
		case "farmerExists":
			controller.FarmerExists()
		case "getFarmerStats":
			controller.GetFarmerStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

// 1. CreateFarmer registers a new farmer
// @Summary      Register a farmer
// @Description  Creates a farmer record after external phone verification
// @Tags         Farmers
// @Accept       json
// @Produce      json
// @Param        request body CreateFarmerRequest true "Farmer data"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /farmers/create [post]
func (c *FarmerController) CreateFarmer() {
	var req CreateFarmerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	// Validate required fields before touching the store
	if req.FirebaseUID == "" || req.Name == "" || req.PhoneNumber == "" ||
		req.AadharNumber == "" || req.Location == "" {
		response.ParamError(c.Ctx, "Missing required fields: firebaseUid, name, phoneNumber, aadharNumber, location")
		return
	}

	farmer := &models.Farmer{
		FirebaseUID:  strings.TrimSpace(req.FirebaseUID),
		Name:         strings.TrimSpace(req.Name),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Passcode:     req.Passcode,
		AadharNumber: strings.TrimSpace(req.AadharNumber),
		Location:     strings.TrimSpace(req.Location),
		CropsGrown:   req.CropsGrown,
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	if err := farmerService.CreateFarmer(farmer); err != nil {
		switch {
		case errors.Is(err, services.ErrFarmerExists):
			response.Fail(c.Ctx, code.ErrFarmerAlreadyExist)
		case errors.Is(err, services.ErrInvalidPasscode):
			response.ParamError(c.Ctx, "Passcode must be exactly 4 digits")
		default:
			response.ServerError(c.Ctx, err.Error())
		}
		return
	}

	response.Created(c.Ctx, "Farmer created successfully", farmer)
}

// 2. GetFarmerByFirebaseUID fetches a farmer by external subject identifier
// @Summary      Get farmer by Firebase UID
// @Tags         Farmers
// @Produce      json
// @Param        uid path string true "Firebase UID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /farmers/firebase/{uid} [get]
func (c *FarmerController) GetFarmerByFirebaseUID() {
	uid := c.Ctx.Param("uid")

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.GetFarmerByFirebaseUID(uid)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "", farmer)
}

// 3. GetFarmerByPhone fetches a farmer by phone number
// @Summary      Get farmer by phone number
// @Tags         Farmers
// @Produce      json
// @Param        phoneNumber path string true "Phone number"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /farmers/phone/{phoneNumber} [get]
func (c *FarmerController) GetFarmerByPhone() {
	phone := c.Ctx.Param("phoneNumber")

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.GetFarmerByPhoneNumber(phone)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "", farmer)
}

// 4. Login verifies phone number and passcode
// @Summary      Farmer login
// @Description  Verifies the phone and passcode pair; the response does not
// @Description  reveal which of the two was wrong
// @Tags         Farmers
// @Accept       json
// @Produce      json
// @Param        request body FarmerLoginRequest true "Login credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /farmers/login [post]
func (c *FarmerController) Login() {
	var req FarmerLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	if req.PhoneNumber == "" || req.Passcode == "" {
		response.ParamError(c.Ctx, "Phone number and passcode are required")
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.VerifyFarmerLogin(req.PhoneNumber, req.Passcode)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerLoginFailed)
		return
	}

	response.Success(c.Ctx, "Login successful", farmer)
}

// 5. UpdateFarmer applies a partial profile update
// @Summary      Update farmer profile
// @Tags         Farmers
// @Accept       json
// @Produce      json
// @Param        uid path string true "Firebase UID"
// @Param        request body map[string]interface{} true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /farmers/update/{uid} [put]
func (c *FarmerController) UpdateFarmer() {
	uid := c.Ctx.Param("uid")

	var body map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&body); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.UpdateFarmer(uid, buildFarmerPatch(body))
	if err != nil {
		if errors.Is(err, services.ErrFarmerExists) {
			response.Fail(c.Ctx, code.ErrFarmerAlreadyExist)
			return
		}
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "Farmer updated successfully", farmer)
}

// 6. UpdateCrops replaces the declared crop list
// @Summary      Replace farmer crops
// @Tags         Farmers
// @Accept       json
// @Produce      json
// @Param        id path int true "Farmer record ID"
// @Param        request body UpdateCropsRequest true "New crop list"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /farmers/crops/{id} [put]
func (c *FarmerController) UpdateCrops() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid farmer ID")
		return
	}

	var req UpdateCropsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.Crops == nil {
		response.ParamError(c.Ctx, "Crops array is required")
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.UpdateFarmerCrops(uint(id), *req.Crops)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "Farmer crops updated successfully", farmer)
}

// 7. DeleteFarmer removes a farmer record
// @Summary      Delete farmer
// @Tags         Farmers
// @Produce      json
// @Param        uid path string true "Firebase UID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /farmers/delete/{uid} [delete]
func (c *FarmerController) DeleteFarmer() {
	uid := c.Ctx.Param("uid")

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	deleted, err := farmerService.DeleteFarmer(uid)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if !deleted {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "Farmer deleted successfully", nil)
}

// 8. GetAllFarmers lists farmers with limit/skip paging
// @Summary      List farmers
// @Tags         Farmers
// @Produce      json
// @Param        limit query int false "Page size, default 50"
// @Param        skip query int false "Offset, default 0"
// @Success      200  {object}  response.Response
// @Router       /farmers/all [get]
func (c *FarmerController) GetAllFarmers() {
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.Ctx.DefaultQuery("skip", "0"))
	if limit < 1 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmers, err := farmerService.GetAllFarmers(limit, skip)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.SuccessPaged(c.Ctx, farmers, models.ListPagination{
		Limit: limit,
		Skip:  skip,
		Count: len(farmers),
	})
}

// 9. FarmerExists reports whether a farmer record exists
// @Summary      Check farmer existence
// @Tags         Farmers
// @Produce      json
// @Param        uid path string true "Firebase UID"
// @Success      200  {object}  response.Response
// @Router       /farmers/exists/{uid} [get]
func (c *FarmerController) FarmerExists() {
	uid := c.Ctx.Param("uid")

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	exists, err := farmerService.FarmerExists(uid)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "", gin.H{"exists": exists})
}

// 10. GetFarmerStats aggregates farmer counts by crop and location
// @Summary      Farmer statistics
// @Tags         Farmers
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /farmers/stats [get]
func (c *FarmerController) GetFarmerStats() {
	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	stats, err := farmerService.GetFarmerStats()
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "", stats)
}
