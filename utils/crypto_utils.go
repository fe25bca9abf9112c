package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateMD5 计算字符串的MD5哈希值，返回32位小写十六进制字符串
func CalculateMD5(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// GenerateContentID 为缺少contentId的帖子生成稳定ID：url和标题拼接后的MD5
func GenerateContentID(url, title string) string {
	return CalculateMD5(url + "|" + title)
}
