package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-registry/dto"
	"github.com/project-registry/services"
)

// ProjectController handles project registry endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes
func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/postprojects", c.CreateProject)
	router.GET("/getprojects", c.ListProjects)
	router.PUT("/putprojects/:id", c.UpdateProjectStatus)
	router.GET("/getCounters", c.GetCounters)
	router.GET("/getRecentProjects", c.GetRecentProjects)
	router.GET("/getDepartmentStats", c.GetDepartmentStats)
}

// CreateProject registers a new project. The body is decoded loosely so that
// missing and mistyped fields are reported by the service validation.
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondError(ctx, invalidPayload(err))
		return
	}

	project, err := c.projectService.Submit(ctx.Request.Context(), payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// ListProjects returns every project
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	projects, err := c.projectService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// UpdateProjectStatus replaces the status of a project
func (c *ProjectController) UpdateProjectStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidPayload(err))
		return
	}

	project, err := c.projectService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// GetCounters returns the per-status project counts
func (c *ProjectController) GetCounters(ctx *gin.Context) {
	counters, err := c.projectService.Counters(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, counters)
}

// GetRecentProjects returns the newest projects
func (c *ProjectController) GetRecentProjects(ctx *gin.Context) {
	projects, err := c.projectService.Recent(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetDepartmentStats returns project totals grouped by division
func (c *ProjectController) GetDepartmentStats(ctx *gin.Context) {
	stats, err := c.projectService.DepartmentStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
