package barocert

import "fmt"

// signRequestDTO is the wire body of a signing request. Vendors share the
// signer identity and token fields but name the title and message fields
// differently; unused fields are omitted from the JSON.
type signRequestDTO struct {
	ReceiverName     string `json:"receiverName"`
	ReceiverHP       string `json:"receiverHP"`
	ReceiverBirthday string `json:"receiverBirthday"`

	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpireIn  int    `json:"expireIn"`

	CallCenterNum string `json:"callCenterNum,omitempty"`

	// KAKAO
	SignTitle    string `json:"signTitle,omitempty"`
	ExtraMessage string `json:"extraMessage,omitempty"`

	// NAVER and PASS
	ReqTitle   string `json:"reqTitle,omitempty"`
	ReqMessage string `json:"reqMessage,omitempty"`

	// PASS shows the signer the original document.
	OriginalURL        string `json:"originalURL,omitempty"`
	OriginalTypeCode   string `json:"originalTypeCode,omitempty"`
	OriginalFormatCode string `json:"originalFormatCode,omitempty"`
}

// signReceiptDTO is the vendor's answer to a signing request.
type signReceiptDTO struct {
	ReceiptID string `json:"receiptID"`
}

// signStatusDTO is one poll answer. State carries the raw vendor outcome
// code: 0 standby, 1 completed, 2 expired, 3 denied, 4 failed,
// 5 not processed.
type signStatusDTO struct {
	ReceiptID string `json:"receiptID"`
	State     int    `json:"state"`
}

// verifyResultDTO is the verified signature the vendor releases once the
// signer completed. CI is the cross-carrier identity and is absent for
// some vendors; SignedDT is the vendor-reported signing time in RFC 3339.
type verifyResultDTO struct {
	ReceiptID  string `json:"receiptID"`
	State      int    `json:"state"`
	SignedData string `json:"signedData"`
	CI         string `json:"ci,omitempty"`
	SignedDT   string `json:"signedDT,omitempty"`
}

// verifyRequestDTO is the body of a PASS verification call, which must
// repeat the signer's encrypted identity. Other vendors verify with an
// empty body.
type verifyRequestDTO struct {
	ReceiverName string `json:"receiverName,omitempty"`
	ReceiverHP   string `json:"receiverHP,omitempty"`
}

// errorDTO is the vendor's error envelope on non-2xx answers.
type errorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e errorDTO) Error() string {
	return fmt.Sprintf("vendor error %d: %s", e.Code, e.Message)
}
