// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LogoutReq は/logoutエンドポイントのリクエストボディを表します。ボディは省略可能です。
// Allがtrueの場合、すべての端末のセッションを失効させます。
type LogoutReq struct {
	All bool `json:"all"`
}
