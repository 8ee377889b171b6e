package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devpress/cmd/api/dto"
	"devpress/cmd/api/services"
)

// UploadImageHandler godoc
// @Summary      이미지 업로드 (관리자)
// @Description  multipart 폼의 image 필드를 저장하고 공개 경로를 반환합니다. name 필드를 주면 그 이름을 쓰되 충돌 시 실패합니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Accept       multipart/form-data
// @Param        image  formData  file    true   "이미지 파일"
// @Param        name   formData  string  false  "확장자를 제외한 저장 이름"
// @Produce      json
// @Success      201  {object}  object{path=string}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      413  {object}  dto.ErrorResponseDTO
// @Router       /admin/image/upload [post]
func UploadImageHandler(svc *services.ImageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_image_field"})
			return
		}

		path, err := svc.Save(file, c.PostForm("name"))
		switch {
		case errors.Is(err, services.ErrImageTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: "file_too_large"})
		case errors.Is(err, services.ErrImageType):
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unsupported_image_type"})
		case errors.Is(err, services.ErrImageInvalidName):
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_file_name"})
		case errors.Is(err, services.ErrImageExists):
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "File exists"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusCreated, gin.H{"path": path})
		}
	}
}

// SitemapHandler godoc
// @Summary      Sitemap
// @Description  Serve the sitemap of all publicly visible pages
// @Tags         feeds
// @Produce      xml
// @Success      200  {string}  string  "urlset XML"
// @Router       /sitemap [get]
func SitemapHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Sitemap(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
	}
}

// RSSHandler godoc
// @Summary      RSS feed
// @Description  Serve an RSS 2.0 feed of the most recent posts
// @Tags         feeds
// @Produce      xml
// @Success      200  {string}  string  "rss XML"
// @Router       /rss [get]
func RSSHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.RSS(c.Request.Context(), 50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", out)
	}
}
