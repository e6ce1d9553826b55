package routes

import (
	"net/http"

	"estate-cms/internal/api/amenities"
	"estate-cms/internal/api/careers"
	"estate-cms/internal/api/gallery"
	"estate-cms/internal/api/homeabout"
	"estate-cms/internal/api/homehero"
	projectsapi "estate-cms/internal/api/projects"
	"estate-cms/internal/api/reviews"
	"estate-cms/internal/api/shared"
	"estate-cms/internal/api/uploads"
	"estate-cms/internal/app/http/middleware"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/domain/media"
	"estate-cms/internal/domain/projects"
	"estate-cms/internal/infra/metrics"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
)

// Repositories holds one repository per document type.
type Repositories struct {
	Projects            store.Repository[projects.Project]
	Reviews             store.Repository[content.Review]
	Amenities           store.Repository[content.Amenity]
	HomeHeroes          store.Repository[content.HomeHero]
	HomeAbouts          store.Repository[content.HomeAbout]
	PaymentLists        store.Repository[content.PaymentList]
	AssociateDevelopers store.Repository[content.AssociateDeveloper]
	Careers             store.Repository[content.Career]
}

// Deps is everything the router needs.
type Deps struct {
	Env   shared.Env
	Store *media.Store
	Repos Repositories
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	env := d.Env

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/uploads/*path", uploads.New(d.Store, env.Log).Serve)

	// ✅ Apply input sanitization to every write route
	api := r.Group("/")
	api.Use(middleware.BodyLimit(env.Limits), middleware.SanitizeAndCleanInputMiddleware())

	// Projects
	proj := projectsapi.New(env, projects.NewService(d.Repos.Projects, env.Images, env.Log))
	pg := api.Group("/", middleware.UploadCategory("projects"))
	pg.POST("/projects", proj.Create)
	pg.GET("/projects", proj.List)
	pg.GET("/projects/:id", proj.Get)
	pg.PUT("/projects/:id", proj.Update)
	pg.DELETE("/projects/:id", proj.Delete)
	pg.GET("/projects-count", proj.Count)
	pg.GET("/projects-zones", proj.Zones)

	dash := r.Group("/dashboard")
	dash.GET("/home", projectsapi.Home)
	dash.GET("/master", proj.List)

	// Reviews
	rev := reviews.New(env, d.Repos.Reviews)
	rg := api.Group("/reviews", middleware.UploadCategory("reviews"))
	rg.POST("", rev.Create)
	rg.GET("", rev.List)
	rg.GET("/:id", rev.Get)
	rg.PUT("/:id", rev.Update)
	rg.DELETE("/:id", rev.Delete)

	// Amenities
	am := amenities.New(env, d.Repos.Amenities)
	ag := api.Group("/amenities", middleware.UploadCategory("amenities"))
	ag.POST("", am.Create)
	ag.GET("", am.List)
	ag.GET("/:id", am.Get)
	ag.PUT("/:id", am.Update)
	ag.DELETE("/:id", am.Delete)

	// Home page
	hero := homehero.New(env, d.Repos.HomeHeroes)
	hg := api.Group("/homehero", middleware.UploadCategory("homehero"))
	hg.POST("", hero.Create)
	hg.GET("", hero.List)
	hg.GET("/:id", hero.Get)
	hg.PUT("/:id", hero.Update)
	hg.DELETE("/:id", hero.Delete)

	about := homeabout.New(env, d.Repos.HomeAbouts)
	abg := api.Group("/homeabout", middleware.UploadCategory("homeabout"))
	abg.POST("", about.Create)
	abg.GET("", about.Get)
	abg.PUT("/:id", about.Update)
	abg.DELETE("/:id", about.Delete)

	// Logo galleries
	pay := gallery.New[content.PaymentList](env, d.Repos.PaymentLists, "Payment")
	pl := api.Group("/paymentlist", middleware.UploadCategory("paymentlist"))
	pl.POST("", pay.Create)
	pl.GET("", pay.List)
	pl.PUT("/:id", pay.Update)
	pl.PUT("/:id/:index", pay.RemoveImage)
	pl.DELETE("/:id", pay.Delete)

	dev := gallery.New[content.AssociateDeveloper](env, d.Repos.AssociateDevelopers, "Associate Developer")
	dg := api.Group("/associatedeveloper", middleware.UploadCategory("associatedeveloper"))
	dg.POST("", dev.Create)
	dg.GET("", dev.List)
	dg.PUT("/:id", dev.Update)
	dg.PUT("/:id/:index", dev.RemoveImage)
	dg.DELETE("/:id", dev.Delete)

	// Careers
	car := careers.New(env, d.Repos.Careers)
	api.POST("/careers", car.Create)
	api.GET("/careers", car.List)
	api.GET("/careers/active", car.ListActive)
	api.GET("/careers-count", car.Count)
	api.GET("/careers/:id", car.Get)
	api.PUT("/careers/:id", car.Update)
	api.PATCH("/careers/:id/toggle-status", car.ToggleStatus)
	api.DELETE("/careers/:id", car.Delete)
}
