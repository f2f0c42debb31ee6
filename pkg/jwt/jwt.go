package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. Token由上游租户开通系统签发，本服务只做校验与解析
// 2. Claims中携带tenant_id：台账的所有读写都必须按租户隔离，
//    中间件解析一次后以显式参数传入应用层（不使用任何全局租户状态）
type Manager struct {
	secret      string        // JWT签名密钥
	tokenExpire time.Duration // Token有效期（签发测试Token时使用）
}

// NewManager 创建JWT管理器
func NewManager(secret string, tokenExpire time.Duration) *Manager {
	return &Manager{
		secret:      secret,
		tokenExpire: tokenExpire,
	}
}

// Claims 自定义JWT Claims
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
// 2. 添加自定义字段（TenantID、OperatorID）
type Claims struct {
	TenantID   uint   `json:"tenant_id"`
	OperatorID uint   `json:"operator_id"`
	Operator   string `json:"operator"`
	jwt.RegisteredClaims
}

// GenerateToken 签发Token（开发/测试环境使用，生产由租户系统签发）
func (m *Manager) GenerateToken(tenantID, operatorID uint, operator string) (string, error) {
	now := time.Now()
	claims := Claims{
		TenantID:   tenantID,
		OperatorID: operatorID,
		Operator:   operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "wms",
			Subject:   fmt.Sprintf("%d", operatorID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "签发Token失败")
	}
	return signed, nil
}

// ParseToken 解析并校验Token
// 返回的Claims.TenantID是后续所有台账操作的租户作用域
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 校验签名算法，防止alg=none攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.TenantID == 0 {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
