package dto

import "ai-deckgen-be/pkg/store"

type AudioUploadResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript,omitempty"`
	Message    string `json:"message,omitempty"`
}

type SupportDocUploadResponse struct {
	Success   bool                  `json:"success"`
	Files     []store.SupportDocFile `json:"files"`
	CharCount int                   `json:"char_count"`
	Truncated bool                  `json:"truncated"`
	Message   string                `json:"message,omitempty"`
}

type MaterialUploadResponse struct {
	Success   bool               `json:"success"`
	PageIndex int                `json:"page_index"`
	Material  store.PageMaterial `json:"material"`
	Message   string             `json:"message,omitempty"`
}

type TableTextRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	PageIndex   int    `json:"page_index"`
	TableText   string `json:"table_text" validate:"required"`
	Description string `json:"description,omitempty"`
}

type RemoveMaterialRequest struct {
	SessionID     string `json:"session_id" validate:"required"`
	PageIndex     int    `json:"page_index"`
	MaterialIndex int    `json:"material_index"`
}

type ListMaterialsResponse struct {
	Success   bool                          `json:"success"`
	Materials map[string][]store.PageMaterial `json:"materials"`
}

type ListSupportDocsResponse struct {
	Success         bool                   `json:"success"`
	Files           []store.SupportDocFile `json:"files"`
	TotalTextLength int                    `json:"total_text_length"`
}

type ReferenceUploadResponse struct {
	Success       bool                    `json:"success"`
	ReferenceType string                  `json:"reference_type"`
	Analysis      *store.TemplateAnalysis `json:"analysis,omitempty"`
	Message       string                  `json:"message,omitempty"`
}

type LogoUploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
