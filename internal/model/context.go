// internal/model/context.go
package model

// コンテキストキーの衝突を避けるための独自型
type contextKey string

// UserIDKey はリクエストコンテキストにユーザーIDを格納するキーです
const UserIDKey contextKey = "user_id"
