package util

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType 按文件头嗅探真实 MIME 类型，拒绝不在白名单内的上传
// allowed 中的条目可以是完整类型或前缀，如 "image/"
func ValidateMimeType(r io.Reader, allowed []string) (string, error) {
	head := make([]byte, 512)
	n, err := r.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}

	detected := http.DetectContentType(head[:n])
	for _, want := range allowed {
		if detected == want || strings.HasPrefix(detected, want) {
			return detected, nil
		}
	}
	return detected, fmt.Errorf("invalid file type: %s", detected)
}
