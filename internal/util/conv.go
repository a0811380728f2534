package util

import "strconv"

// MustParseUint 解析路径参数中的数字 ID，非法输入返回 0，由下游按记录不存在处理
func MustParseUint(s string) uint {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
