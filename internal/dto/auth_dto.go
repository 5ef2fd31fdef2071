package dto

import "time"

type InviteLoginRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

type InviteLoginResponse struct {
	Success    bool   `json:"success"`
	InviteCode string `json:"invite_code,omitempty"`
	Token      string `json:"token,omitempty"`
	Message    string `json:"message,omitempty"`
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

type LoginRecordView struct {
	InviteCode string    `json:"invite_code"`
	ClientIP   string    `json:"client_ip"`
	UserAgent  string    `json:"user_agent"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type LoginRecordsResponse struct {
	Success bool              `json:"success"`
	Total   int               `json:"total"`
	Records []LoginRecordView `json:"records"`
}

type VisitResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
