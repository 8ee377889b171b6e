package handlers

import (
	"errors"
	"net/http"
	"strconv"

	_ "devpress/cmd/api/dto"

	"github.com/gin-gonic/gin"

	"devpress/cmd/api/services"
	"devpress/repositories"
)

const maxPageSize = 100

// parsePagination 은 1-base 페이지 쿼리를 읽고 상한을 강제한다.
// limit 이 우선이고 page_size 는 하위 호환용 별칭이다.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("limit", c.DefaultQuery("page_size", "20")))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List publicly visible posts with filters and pagination
// @Tags         posts
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        limit     query  int     false  "Page size (<=100)"
// @Param        category  query  string  false  "Category slug"
// @Param        tag       query  string  false  "Tag slug"
// @Param        featured  query  bool    false  "Featured only"
// @Param        search    query  string  false  "Title/description search"
// @Produce      json
// @Success      200  {object}  dto.Pagination[dto.PostDTO]
// @Router       /v1/posts [get]
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListPostsInput
		in.Page, in.PageSize = parsePagination(c)
		in.Category = c.Query("category")
		in.Tag = c.Query("tag")
		in.Search = c.Query("search")
		if v, ok := c.GetQuery("featured"); ok {
			featured := v == "true" || v == "1"
			in.Featured = &featured
		}

		page, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetPostHandler godoc
// @Summary      Get post by slug
// @Description  Get a rendered post with related-post suggestions
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.PostDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /v1/posts/{slug} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Description  List all categories with published post counts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  dto.CategoryCountDTO
// @Router       /v1/categories [get]
func ListCategoriesHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// ListTagsHandler godoc
// @Summary      List tags
// @Description  List all tags with published post counts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  dto.TagCountDTO
// @Router       /v1/tags [get]
func ListTagsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := svc.Tags(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}
