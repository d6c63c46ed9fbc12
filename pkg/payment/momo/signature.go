package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Field is one key=value pair of a canonical signature string.
type Field struct {
	Key   string
	Value string
}

// CanonicalString joins fields as key=value with '&' in the given order.
// MoMo fixes the order per request type, so callers pass fields pre-sorted.
func CanonicalString(fields []Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	return b.String()
}

// Sign returns the hex HMAC-SHA256 of raw keyed by secret.
func Sign(secret, raw string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares signature against the expected HMAC in constant time.
func Verify(secret, raw, signature string) bool {
	expected := Sign(secret, raw)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func createFields(accessKey string, req *CreateRequest) []Field {
	return []Field{
		{"accessKey", accessKey},
		{"amount", req.Amount.String()},
		{"extraData", req.ExtraData},
		{"ipnUrl", req.IpnUrl},
		{"orderId", req.OrderId},
		{"orderInfo", req.OrderInfo},
		{"partnerCode", req.PartnerCode},
		{"redirectUrl", req.RedirectUrl},
		{"requestId", req.RequestId},
		{"requestType", req.RequestType},
	}
}

func queryFields(accessKey string, req *QueryRequest) []Field {
	return []Field{
		{"accessKey", accessKey},
		{"orderId", req.OrderId},
		{"partnerCode", req.PartnerCode},
		{"requestId", req.RequestId},
	}
}

func ipnFields(accessKey string, n *IPN) []Field {
	return []Field{
		{"accessKey", accessKey},
		{"amount", n.Amount.String()},
		{"extraData", n.ExtraData},
		{"message", n.Message},
		{"orderId", n.OrderId},
		{"orderInfo", n.OrderInfo},
		{"orderType", n.OrderType},
		{"partnerCode", n.PartnerCode},
		{"payType", n.PayType},
		{"requestId", n.RequestId},
		{"responseTime", n.ResponseTime.String()},
		{"resultCode", n.ResultCode.String()},
		{"transId", n.TransId.String()},
	}
}
