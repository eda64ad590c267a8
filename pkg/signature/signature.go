package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign 使用HMAC-SHA256和给定的密钥对原始负载进行签名，
// 返回十六进制编码的签名字符串。
// Razorpay等服务商的Webhook签名采用的正是这种格式。
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify 验证一个给定的负载和签名是否匹配。
// 使用 hmac.Equal 进行时间恒定的比较，防止时序攻击。
func Verify(secret, payload []byte, signatureHex string) bool {
	expected, err := hex.DecodeString(Sign(secret, payload))
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, actual)
}
