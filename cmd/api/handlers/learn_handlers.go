package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devpress/cmd/api/dto"
	"devpress/cmd/api/services"
	"devpress/repositories"
)

// ListTopicsHandler godoc
// @Summary      List topics
// @Description  List all published tutorial topics in display order
// @Tags         learn
// @Produce      json
// @Success      200  {array}  dto.TopicDTO
// @Router       /v1/learn/topics [get]
func ListTopicsHandler(svc *services.LearnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		topics, err := svc.ListTopics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, topics)
	}
}

// GetTopicHandler godoc
// @Summary      Get topic outline
// @Description  Get a published topic with its merged lesson/section outline
// @Tags         learn
// @Param        slug  path  string  true  "Topic slug"
// @Produce      json
// @Success      200  {object}  dto.TopicDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /v1/learn/topics/{slug} [get]
func GetTopicHandler(svc *services.LearnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic, err := svc.GetTopic(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, topic)
	}
}

// GetLessonHandler godoc
// @Summary      Get lesson page
// @Description  Get a rendered lesson with prev/next navigation links
// @Tags         learn
// @Param        slug    path  string  true  "Topic slug"
// @Param        lesson  path  string  true  "Lesson slug"
// @Produce      json
// @Success      200  {object}  dto.LessonDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /v1/learn/topics/{slug}/lessons/{lesson} [get]
func GetLessonHandler(svc *services.LearnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lesson, err := svc.GetLesson(c.Request.Context(), c.Param("slug"), c.Param("lesson"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lesson)
	}
}

// UpsertTopicHandler godoc
// @Summary      토픽 적재 (관리자)
// @Description  토픽과 그 아래 섹션/레슨 트리를 통째로 생성하거나 교체합니다. 제출되지 않은 기존 행은 삭제됩니다.
// @Tags         admin
// @Security     ApiKeyAuth
// @Accept       json
// @Param        slug  path  string                  true  "Topic slug"
// @Param        body  body  dto.TopicUpsertPayload  true  "토픽 트리 페이로드"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Success      201  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ValidationErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /admin/learn/topics/{slug} [put]
func UpsertTopicHandler(svc *services.LearnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.TopicUpsertPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_json_body"})
			return
		}
		if issues := payload.Validate(); len(issues) > 0 {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseDTO{
				Error:  "validation_failed",
				Issues: issues,
			})
			return
		}

		created, err := svc.UpsertTopic(c.Request.Context(), c.Param("slug"), payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if created {
			c.JSON(http.StatusCreated, dto.MessageResponseDTO{Message: "topic_created"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "topic_updated"})
	}
}
