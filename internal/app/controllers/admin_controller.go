package controllers

import (
	"errors"
	"strconv"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services/container"
	"github.com/Anandha-scraper/HarvestChain/internal/error/code"
	"github.com/Anandha-scraper/HarvestChain/internal/error/response"

	"github.com/gin-gonic/gin"
)

// AdminController handles the admin panel routes
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController creates a new admin controller
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// InitMasterCustomRequest is the setup-secret-gated master bootstrap payload
type InitMasterCustomRequest struct {
	SetupSecret string `json:"setupSecret"`
	Username    string `json:"username" example:"master"`
	Password    string `json:"password" example:"S3cure!pass"`
}

// InitDBRequest controls the database bootstrap
type InitDBRequest struct {
	CreateMaster bool `json:"createMaster"`
}

// AdminLoginRequest is the admin login payload
type AdminLoginRequest struct {
	Username string `json:"username" example:"master"`
	Password string `json:"password" example:"admin123"`
}

// UpdateCredentialsRequest is the self-service credential rotation payload
type UpdateCredentialsRequest struct {
	AdminID         uint   `json:"adminId"`
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// adminFarmerView projects a farmer record for admin responses. The passcode
// is never included.
func adminFarmerView(farmer *models.Farmer) gin.H {
	return gin.H{
		"id":           farmer.ID,
		"firebaseUid":  farmer.FirebaseUID,
		"name":         farmer.Name,
		"phoneNumber":  farmer.PhoneNumber,
		"aadharNumber": farmer.AadharNumber,
		"location":     farmer.Location,
		"cropsGrown":   farmer.CropsGrown,
		"createdAt":    farmer.CreatedAt,
		"updatedAt":    farmer.UpdatedAt,
	}
}

// HandleAdminFunc returns a gin handler dispatching to the named method
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "initMaster":
			controller.InitMaster()
		case "initMasterCustom":
			controller.InitMasterCustom()
		case "initDB":
			controller.InitDB()
		case "login":
			controller.Login()
		case "getFarmers":
			controller.GetFarmers()
		case "getFarmer":
			controller.GetFarmer()
		case "updateFarmer":
			controller.UpdateFarmer()
		case "deleteFarmer":
			controller.DeleteFarmer()
		case "getStats":
			controller.GetStats()
		case "updateCredentials":
			controller.UpdateCredentials()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

// 1. InitMaster bootstraps the master admin with default credentials
// @Summary      Initialize master admin
// @Description  Idempotent; an existing master is returned unchanged
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/init-master [post]
func (c *AdminController) InitMaster() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	master, err := adminService.CreateMasterAdmin()
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "Master admin initialized successfully", gin.H{
		"username": master.Username,
		"role":     master.Role,
	})
}

// 2. InitMasterCustom bootstraps the master admin with supplied credentials,
// gated by the setup secret
// @Summary      Initialize master admin with custom credentials
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body InitMasterCustomRequest true "Setup secret and credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/init-master/custom [post]
func (c *AdminController) InitMasterCustom() {
	var req InitMasterCustomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	cfg := c.Container.GetConfig()
	// Fails closed: no configured secret means the route is unusable
	if cfg.SetupSecret == "" || req.SetupSecret != cfg.SetupSecret {
		response.Fail(c.Ctx, code.ErrSetupUnauthorized)
		return
	}

	if req.Username == "" || req.Password == "" {
		response.ParamError(c.Ctx, "Username and password are required")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	master, err := adminService.CreateMasterAdminWithCredentials(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMasterAlreadyExists):
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
		case errors.Is(err, services.ErrAdminUsernameTaken):
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist)
		default:
			response.ServerError(c.Ctx, err.Error())
		}
		return
	}

	response.Success(c.Ctx, "Master admin created", gin.H{
		"id":       master.ID,
		"username": master.Username,
	})
}

// 3. InitDB ensures tables and indexes exist
// @Summary      Initialize database
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body InitDBRequest false "Bootstrap options"
// @Success      200  {object}  response.Response
// @Router       /admin/init-db [post]
func (c *AdminController) InitDB() {
	var req InitDBRequest
	// Body is optional
	_ = c.Ctx.ShouldBindJSON(&req)

	initService := c.Container.GetService("init").(services.InterfaceInitService)
	result, err := initService.InitializeDatabase(req.CreateMaster)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "Database initialized", result)
}

// 4. Login authenticates an admin and issues a bearer token
// @Summary      Admin login
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body AdminLoginRequest true "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/login [post]
func (c *AdminController) Login() {
	var req AdminLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		response.ParamError(c.Ctx, "Username and password are required")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.VerifyAdminLogin(req.Username, req.Password)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if admin == nil {
		response.Fail(c.Ctx, code.ErrAdminLoginFailed)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "Login successful", gin.H{
		"id":        admin.ID,
		"username":  admin.Username,
		"role":      admin.Role,
		"lastLogin": admin.LastLogin,
		"token":     token,
	})
}

// 5. GetFarmers lists farmers for the admin dashboard
// @Summary      List farmers (admin)
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Page size, default 50"
// @Param        skip query int false "Offset, default 0"
// @Success      200  {object}  response.Response
// @Router       /admin/farmers [get]
// @Security     BearerAuth
func (c *AdminController) GetFarmers() {
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.Ctx.DefaultQuery("skip", "0"))
	if limit < 1 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	total, err := farmerService.CountFarmers()
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	farmers, err := farmerService.GetAllFarmers(limit, skip)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	views := make([]gin.H, 0, len(farmers))
	for i := range farmers {
		views = append(views, adminFarmerView(&farmers[i]))
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	response.SuccessPaged(c.Ctx, views, models.PagedPagination{
		Limit: limit,
		Skip:  skip,
		Total: total,
		Pages: pages,
	})
}

// 6. GetFarmer fetches one farmer by record ID
// @Summary      Get farmer (admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Farmer record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/farmers/{id} [get]
// @Security     BearerAuth
func (c *AdminController) GetFarmer() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid farmer ID")
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.GetFarmerByID(uint(id))
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	if farmer == nil {
		response.Fail(c.Ctx, code.ErrFarmerNotFound)
		return
	}

	response.Success(c.Ctx, "", adminFarmerView(farmer))
}

// 7. UpdateFarmer applies a partial update to a farmer record
// @Summary      Update farmer (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Farmer record ID"
// @Param        request body map[string]interface{} true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/farmers/{id} [put]
// @Security     BearerAuth
func (c *AdminController) UpdateFarmer() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid farmer ID")
		return
	}

	var body map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&body); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	farmer, err := farmerService.UpdateFarmerByID(uint(id), buildFarmerPatch(body))
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

	response.Success(c.Ctx, "Farmer updated successfully", adminFarmerView(farmer))
}

// 8. DeleteFarmer removes a farmer record by ID
// @Summary      Delete farmer (admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Farmer record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/farmers/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteFarmer() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid farmer ID")
		return
	}

	farmerService := c.Container.GetService("farmer").(services.InterfaceFarmerService)
	deleted, err := farmerService.DeleteFarmerByID(uint(id))
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

// 9. GetStats returns the admin dashboard statistics
// @Summary      Admin statistics
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (c *AdminController) GetStats() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	stats, err := adminService.GetAdminStats()
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, "", stats)
}

// 10. UpdateCredentials rotates the admin's own username and/or password
// @Summary      Update admin credentials
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body UpdateCredentialsRequest true "Credential changes"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/credentials [put]
// @Security     BearerAuth
func (c *AdminController) UpdateCredentials() {
	var req UpdateCredentialsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request body: "+err.Error())
		return
	}

	if req.AdminID == 0 {
		response.ParamError(c.Ctx, "Admin ID is required")
		return
	}
	if req.Username == "" && req.NewPassword == "" {
		response.ParamError(c.Ctx, "Username or new password is required")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdminCredentials(req.AdminID, services.CredentialUpdate{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			response.Fail(c.Ctx, code.ErrAdminNotFound)
		case errors.Is(err, services.ErrAdminUsernameTaken):
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist)
		case errors.Is(err, services.ErrCurrentPasswordRequired):
			response.ParamError(c.Ctx, err.Error())
		case errors.Is(err, services.ErrCurrentPasswordIncorrect):
			response.Fail(c.Ctx, code.ErrCurrentPasswordIncorrect)
		case errors.Is(err, services.ErrNoCredentialChanges):
			response.ParamError(c.Ctx, err.Error())
		default:
			response.ServerError(c.Ctx, err.Error())
		}
		return
	}

	response.Success(c.Ctx, "Credentials updated successfully", gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
	})
}
