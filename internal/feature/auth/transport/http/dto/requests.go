// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import openapi_types "github.com/oapi-codegen/runtime/types"

// SignupReq は/user/signupエンドポイントのリクエストボディを表します。
type SignupReq struct {
	Name     string              `json:"name" binding:"required,max=255"`
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8,max=72"`
}

// LoginReq は/user/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// ForgotPasswordReq は/user/forgot-passwordエンドポイントのリクエストボディを表します。
type ForgotPasswordReq struct {
	Email openapi_types.Email `json:"email" binding:"required,email"`
}

// ResetPasswordReq は/user/reset-passwordエンドポイントのリクエストボディを表します。
// パスワードポリシーはユースケース側で検証します。
type ResetPasswordReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailReq は/user/verify-emailエンドポイントのリクエストボディを表します。
type VerifyEmailReq struct {
	Token string `json:"token" binding:"required"`
}

// ChangePasswordReq は/user/passwordエンドポイントのリクエストボディを表します。
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
