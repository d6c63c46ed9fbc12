package momo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ResultCodeSuccess is the gateway's "transaction successful" code.
const ResultCodeSuccess = 0

// FlexInt decodes a JSON number or a numeric string. MoMo sends amounts and
// result codes either way depending on the endpoint.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("momo: invalid numeric string %q", s)
		}
		*f = FlexInt(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

func (f FlexInt) String() string {
	return strconv.FormatInt(int64(f), 10)
}

type CreateRequest struct {
	PartnerCode  string  `json:"partnerCode"`
	PartnerName  string  `json:"partnerName,omitempty"`
	StoreId      string  `json:"storeId,omitempty"`
	RequestId    string  `json:"requestId"`
	Amount       FlexInt `json:"amount"`
	OrderId      string  `json:"orderId"`
	OrderInfo    string  `json:"orderInfo"`
	RedirectUrl  string  `json:"redirectUrl"`
	IpnUrl       string  `json:"ipnUrl"`
	Lang         string  `json:"lang"`
	RequestType  string  `json:"requestType"`
	AutoCapture  bool    `json:"autoCapture"`
	ExtraData    string  `json:"extraData"`
	OrderGroupId string  `json:"orderGroupId,omitempty"`
	Signature    string  `json:"signature"`
}

type CreateResponse struct {
	PartnerCode  string  `json:"partnerCode"`
	OrderId      string  `json:"orderId"`
	RequestId    string  `json:"requestId"`
	Amount       FlexInt `json:"amount"`
	ResponseTime FlexInt `json:"responseTime"`
	Message      string  `json:"message"`
	ResultCode   FlexInt `json:"resultCode"`
	PayUrl       string  `json:"payUrl"`
	Deeplink     string  `json:"deeplink,omitempty"`
	QrCodeUrl    string  `json:"qrCodeUrl,omitempty"`
}

type QueryRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestId   string `json:"requestId"`
	OrderId     string `json:"orderId"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type QueryResponse struct {
	PartnerCode  string  `json:"partnerCode"`
	OrderId      string  `json:"orderId"`
	RequestId    string  `json:"requestId"`
	ExtraData    string  `json:"extraData"`
	Amount       FlexInt `json:"amount"`
	TransId      FlexInt `json:"transId"`
	PayType      string  `json:"payType"`
	ResultCode   FlexInt `json:"resultCode"`
	Message      string  `json:"message"`
	ResponseTime FlexInt `json:"responseTime"`
}

// IPN is the asynchronous payment notification posted to ipnUrl.
type IPN struct {
	PartnerCode  string  `json:"partnerCode"`
	OrderId      string  `json:"orderId"`
	RequestId    string  `json:"requestId"`
	Amount       FlexInt `json:"amount"`
	OrderInfo    string  `json:"orderInfo"`
	OrderType    string  `json:"orderType"`
	TransId      FlexInt `json:"transId"`
	ResultCode   FlexInt `json:"resultCode"`
	Message      string  `json:"message"`
	PayType      string  `json:"payType"`
	ResponseTime FlexInt `json:"responseTime"`
	ExtraData    string  `json:"extraData"`
	Signature    string  `json:"signature"`
}

func (n *IPN) Succeeded() bool {
	return n.ResultCode == ResultCodeSuccess
}

// GatewayError is a non-success result returned by the gateway itself.
type GatewayError struct {
	ResultCode int64
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("momo result code %d: %s", e.ResultCode, e.Message)
}
