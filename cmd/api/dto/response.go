package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"unauthorized"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"post deleted"`
}

// ValidationIssue 는 스키마 위반 한 건을 필드 단위로 설명한다.
type ValidationIssue struct {
	Field   string `json:"field" example:"slug"`
	Message string `json:"message" example:"must match ^[a-z0-9-]+$"`
}

// ValidationErrorResponseDTO is the 400 body for schema violations.
type ValidationErrorResponseDTO struct {
	Error  string            `json:"error" example:"validation_failed"`
	Issues []ValidationIssue `json:"issues"`
}
