// Package dto defines data transfer objects for the contact feature's HTTP transport layer.
package dto

import openapi_types "github.com/oapi-codegen/runtime/types"

// ContactReq represents the request body for POST /contact.
type ContactReq struct {
	Email   openapi_types.Email `json:"email" binding:"required,email"`
	Message string              `json:"message" binding:"required,max=5000"`
	UserID  uint                `json:"userId" binding:"required"`
}
