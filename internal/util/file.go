package util

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

var attachmentExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".pdf": true, ".doc": true, ".docx": true,
}

// RandomFileName 生成随机十六进制文件名，保留原扩展名
func RandomFileName(original string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b) + strings.ToLower(filepath.Ext(original))
}

func IsAllowedImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

func IsAllowedAttachment(filename string) bool {
	return attachmentExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileURL 客户端可用的文件地址：远端存储返回完整 http(s) 地址，
// 本地存储只存文件名，这里补全静态路由前缀
func FileURL(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http") {
		return name
	}
	return "/uploads/" + name
}
