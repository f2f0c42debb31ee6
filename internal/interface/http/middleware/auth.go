package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/wms/pkg/jwt"
	"github.com/xiebiao/wms/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 验证Token有效性
// 3. 将租户与操作员信息注入Context
//
// Token由上游租户开通系统签发，本服务只做校验；
// 台账的每一次读写都必须落在Claims中的tenant_id作用域内，
// Handler从Context取出后以显式参数传给应用层，不使用任何全局租户状态。
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// RequireAuth 要求携带有效Token
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.POST("/outbound/orders", handler.CreateOrder)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先登录")
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将租户与操作员信息注入到Context（后续Handler使用）
		c.Set("tenant_id", claims.TenantID)
		c.Set("operator_id", claims.OperatorID)
		c.Set("operator", claims.Operator)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetTenantID 从Context获取当前租户ID
func GetTenantID(c *gin.Context) uint {
	if tenantID, exists := c.Get("tenant_id"); exists {
		if tid, ok := tenantID.(uint); ok {
			return tid
		}
	}
	return 0
}

// GetOperatorID 从Context获取当前操作员ID
func GetOperatorID(c *gin.Context) uint {
	if operatorID, exists := c.Get("operator_id"); exists {
		if oid, ok := operatorID.(uint); ok {
			return oid
		}
	}
	return 0
}

// MustGetTenantID 从Context获取租户ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetTenantID(c *gin.Context) uint {
	tenantID := GetTenantID(c)
	if tenantID == 0 {
		panic("tenant_id not found in context")
	}
	return tenantID
}
