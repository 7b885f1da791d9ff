package router

import (
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	adminHandler := handlers.NewAdminHandler()
	seoHandler := handlers.NewSEOHandler()

	// Public routes
	r.GET("/", postHandler.Index)          // home - published posts with filters
	r.GET("/post/:id", postHandler.Detail) // post detail page
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/bookmarks", postHandler.MyBookmarks)       // my bookmarked posts
		authorized.POST("/bookmark/toggle", bookmarkHandler.Toggle) // add/remove bookmark
		authorized.GET("/bookmark/status", bookmarkHandler.Status)  // bookmark state for a post
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/posts/new", adminHandler.ShowCreate)     // new post form
		admin.POST("/posts", adminHandler.Create)            // create post
		admin.GET("/posts/:id/edit", adminHandler.ShowEdit)  // edit post form
		admin.POST("/posts/:id/edit", adminHandler.Update)   // update post
		admin.POST("/posts/:id/delete", adminHandler.Delete) // delete post

		admin.GET("/drafts", adminHandler.DraftPosts)                  // draft management
		admin.POST("/drafts/:id/publish", adminHandler.PublishDraft)   // publish one draft
		admin.POST("/posts/toggle-publish", adminHandler.TogglePublish)

		admin.POST("/drafts/batch-publish", adminHandler.BatchPublish)
		admin.POST("/drafts/batch-delete", adminHandler.BatchDelete)
		admin.POST("/posts/batch-toggle-publish", adminHandler.BatchTogglePublish)

		admin.POST("/upload", adminHandler.UploadImage) // editor image upload
	}
}
