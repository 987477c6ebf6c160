package auth

import "context"

// Principal 当前请求的已认证用户
type Principal struct {
	ID     int64
	Email  string
	Role   string
	Active bool
}

// PrincipalLoader 每次请求从存储中重新加载用户，不存在时返回 nil
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID int64) (*Principal, error)
}

// RevocationChecker 检查Token是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
