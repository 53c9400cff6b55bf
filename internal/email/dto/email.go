package dto

import emaildomain "email-planner-backend/internal/email/domain"

type EmailListResponse struct {
	Total  int64                `json:"total"`
	Emails []*emaildomain.Email `json:"emails"`
}
