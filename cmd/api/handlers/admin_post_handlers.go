package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devpress/cmd/api/dto"
	"devpress/cmd/api/services"
	"devpress/repositories"
)

// BulkCreatePostsHandler godoc
// @Summary      포스트 일괄 적재
// @Description  포스트 배열을 받아 슬러그 기준으로 생성/갱신합니다. 항목별로 독립 처리되며 전체 실패여도 200 과 항목별 결과를 돌려줍니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Accept       json
// @Param        body  body  []dto.PostUpsertPayload  true  "포스트 페이로드 배열"
// @Produce      json
// @Success      200  {object}  dto.BulkUpsertResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /admin/posts/create [post]
func BulkCreatePostsHandler(svc *services.AdminPostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payloads []dto.PostUpsertPayload
		if err := c.ShouldBindJSON(&payloads); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_json_body"})
			return
		}
		if len(payloads) == 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "empty_payload"})
			return
		}

		c.JSON(http.StatusOK, svc.BulkUpsert(c.Request.Context(), payloads))
	}
}

// AdminListPostsHandler godoc
// @Summary      포스트 목록 (관리자)
// @Description  공개 여부와 무관하게 모든 포스트를 페이지 단위로 반환합니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        limit      query  int     false  "Page size (<=100)"
// @Param        published  query  bool    false  "Published filter"
// @Param        featured   query  bool    false  "Featured filter"
// @Param        category   query  string  false  "Category slug"
// @Param        search     query  string  false  "Title/description search"
// @Produce      json
// @Success      200  {object}  dto.Pagination[dto.AdminPostDTO]
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /admin/posts/create [get]
func AdminListPostsHandler(svc *services.AdminPostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.AdminListPostsInput
		in.Page, in.PageSize = parsePagination(c)
		in.Category = c.Query("category")
		in.Search = c.Query("search")
		if v, ok := c.GetQuery("published"); ok {
			published := v == "true" || v == "1"
			in.Published = &published
		}
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

// reservedSlug 는 일괄 적재 라우트가 차지한 "create" 경로를 :slug 라우트가
// 가로채지 않도록 한다. 해당 경로의 다른 메서드는 405 로 답한다.
func reservedSlug(c *gin.Context) bool {
	if c.Param("slug") != "create" {
		return false
	}
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	return true
}

// GetAdminPostHandler godoc
// @Summary      포스트 조회 (관리자)
// @Description  초안을 포함해 포스트 전체 필드를 반환합니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.AdminPostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/posts/{slug} [get]
func GetAdminPostHandler(svc *services.AdminPostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Get(c.Request.Context(), c.Param("slug"))
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

// UpdatePostHandler godoc
// @Summary      포스트 수정 (관리자)
// @Description  단일 포스트를 페이로드로 덮어씁니다. URL 슬러그가 본문보다 우선합니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Accept       json
// @Param        slug  path  string                 true  "Post slug"
// @Param        body  body  dto.PostUpsertPayload  true  "포스트 페이로드"
// @Produce      json
// @Success      200  {object}  dto.AdminPostDTO
// @Failure      400  {object}  dto.ValidationErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/posts/{slug} [put]
func UpdatePostHandler(svc *services.AdminPostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reservedSlug(c) {
			return
		}
		slug := c.Param("slug")

		var payload dto.PostUpsertPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_json_body"})
			return
		}

		// 검증은 URL 슬러그 기준으로 한다.
		payload.Slug = slug
		if issues := payload.Validate(); len(issues) > 0 {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseDTO{
				Error:  "validation_failed",
				Issues: issues,
			})
			return
		}

		post, err := svc.Update(c.Request.Context(), slug, payload)
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

// DeletePostHandler godoc
// @Summary      포스트 삭제 (관리자)
// @Description  포스트와 태그 연결을 삭제합니다. 태그/카테고리 행은 남습니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/posts/{slug} [delete]
func DeletePostHandler(svc *services.AdminPostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reservedSlug(c) {
			return
		}
		err := svc.Delete(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "post_deleted"})
	}
}
