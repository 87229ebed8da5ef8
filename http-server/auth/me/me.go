package me

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/policy"
)

type Response struct {
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
	Pages          []string  `json:"pages"`
	EditableFields []string  `json:"editable_fields"`
}

// Me describes the caller of the request: what it may open and edit.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := auth.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		render.JSON(w, r, Response{
			Username:       session.Username,
			Role:           session.Role,
			ExpiresAt:      session.ExpiresAt,
			Pages:          policy.AccessiblePages(session.Role),
			EditableFields: policy.EditableFields(session.Role),
		})
	}
}
