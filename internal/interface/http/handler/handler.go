package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/wms/pkg/response"
)

// dateLayout 效期等业务日期的传输格式
const dateLayout = "2006-01-02"

// parseIDParam 解析路径中的数字ID参数
// 解析失败时已写入响应，调用方直接return即可
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 非法的"+name)
		return 0, false
	}
	return uint(id), true
}

// parseDate 解析可空的业务日期字符串
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
