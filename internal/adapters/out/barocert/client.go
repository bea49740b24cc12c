// Package barocert talks to the remote e-signature vendors (KAKAO, NAVER,
// PASS) through their shared gateway. One signing attempt is a three-phase
// flow: request the signature, poll until the signer acts or the window
// lapses, then verify the completed signature. Vendor failures are absorbed
// into a terminal outcome instead of surfacing as Go errors, so workers
// always have something to record.
package barocert

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

const (
	defaultBaseURL       = "https://barocert.linkhub.co.kr"
	defaultSigningWindow = 5 * time.Minute
	defaultPollInterval  = time.Second

	tokenTypeHash = "HASH"

	// PASS original-document presentation codes.
	passOriginalTypeCode   = "CT"
	passOriginalFormatCode = "DOWNLOAD_DOCUMENT"
)

// Config carries the vendor gateway credentials. The secret key is the
// base64 of the 32 byte key shared with the gateway; client codes are
// issued per vendor under one link ID.
type Config struct {
	BaseURL   string
	LinkID    string
	SecretKey string

	KakaoClientCode string
	NaverClientCode string
	PassClientCode  string

	CallCenterNum string

	// SigningWindow bounds how long one attempt waits for the signer.
	// Zero means the 5 minute default.
	SigningWindow time.Duration

	// PollInterval is the pause between status calls. Zero means 1s.
	PollInterval time.Duration
}

// Client implements ports.CertClient against the vendor gateway.
type Client struct {
	baseURL       string
	linkID        string
	secret        []byte
	cipher        fieldCipher
	clientCodes   map[cert.Vendor]string
	callCenterNum string
	signingWindow time.Duration
	pollInterval  time.Duration
	httpClient    *http.Client
	clock         ports.Clock
	logger        *slog.Logger
}

// NewClient creates a vendor gateway client. httpClient may be nil for
// http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client, clock ports.Clock, logger *slog.Logger) (*Client, error) {
	if cfg.LinkID == "" {
		return nil, errs.NewValueIsRequiredError("linkID")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	secret, err := base64.StdEncoding.DecodeString(cfg.SecretKey)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("secretKey", err)
	}
	cipher, err := newFieldCipher(secret)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("secretKey", err)
	}

	client := &Client{
		baseURL: cfg.BaseURL,
		linkID:  cfg.LinkID,
		secret:  secret,
		cipher:  cipher,
		clientCodes: map[cert.Vendor]string{
			cert.VendorKakao: cfg.KakaoClientCode,
			cert.VendorNaver: cfg.NaverClientCode,
			cert.VendorPass:  cfg.PassClientCode,
		},
		callCenterNum: cfg.CallCenterNum,
		signingWindow: cfg.SigningWindow,
		pollInterval:  cfg.PollInterval,
		httpClient:    httpClient,
		clock:         clock,
		logger:        logger.With("component", "barocert"),
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.signingWindow <= 0 {
		client.signingWindow = defaultSigningWindow
	}
	if client.pollInterval <= 0 {
		client.pollInterval = defaultPollInterval
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}

	return client, nil
}

// TrySign drives one attempt through request, poll and verify. The return
// is always terminal: a signer who never acts within the window yields
// StateExpired, vendor errors yield StateFailed with the broken stage.
func (c *Client) TrySign(ctx context.Context, req ports.SignRequest) ports.SignOutcome {
	logger := c.logger.With("vendor", req.Vendor.String(), "signer", req.Signer.Name)

	clientCode, ok := c.clientCodes[req.Vendor]
	if !ok || clientCode == "" {
		return failed(cert.StageRequest, "", fmt.Sprintf("no client code for vendor %s", req.Vendor))
	}

	receiptID, err := c.requestSign(ctx, clientCode, req)
	if err != nil {
		logger.Warn("signing request failed", "error", err)
		return failed(cert.StageRequest, "", err.Error())
	}
	logger = logger.With("receiptID", receiptID)
	logger.Debug("signing requested")

	code, err := c.pollStatus(ctx, clientCode, req.Vendor, receiptID)
	if err != nil {
		logger.Warn("status polling failed", "error", err)
		return failed(cert.StagePoll, receiptID, err.Error())
	}

	switch state := cert.StateFromOutcomeCode(code); state {
	case cert.StateCompleted:
		result, verifyErr := c.verify(ctx, clientCode, receiptID, req)
		if verifyErr != nil {
			logger.Warn("signature verification failed", "error", verifyErr)
			return failed(cert.StageVerify, receiptID, verifyErr.Error())
		}
		logger.Debug("signing completed")
		return ports.SignOutcome{
			State:     cert.StateCompleted,
			ReceiptID: receiptID,
			Result:    &result,
		}
	case cert.StateStandby, cert.StateExpired:
		// Still standby after the window means the signer never acted.
		logger.Debug("signing window lapsed")
		return ports.SignOutcome{State: cert.StateExpired, ReceiptID: receiptID}
	default:
		logger.Debug("signer declined or vendor failed", "outcomeCode", code)
		return ports.SignOutcome{
			State:       cert.StateFailed,
			ReceiptID:   receiptID,
			FailedStage: cert.StagePoll,
			FailReason:  fmt.Sprintf("vendor outcome code %d", code),
		}
	}
}

func failed(stage cert.Stage, receiptID, reason string) ports.SignOutcome {
	return ports.SignOutcome{
		State:       cert.StateFailed,
		ReceiptID:   receiptID,
		FailedStage: stage,
		FailReason:  reason,
	}
}

func (c *Client) requestSign(ctx context.Context, clientCode string, req ports.SignRequest) (string, error) {
	body, err := c.buildSignRequest(req)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("/%s/Sign/%s", req.Vendor, clientCode)

	var receipt signReceiptDTO
	if err = c.call(ctx, http.MethodPost, path, body, &receipt); err != nil {
		return "", err
	}
	if receipt.ReceiptID == "" {
		return "", fmt.Errorf("vendor returned no receipt ID")
	}
	return receipt.ReceiptID, nil
}

// buildSignRequest renders the vendor-specific field set with the signer
// identity, token and messages sealed by the field cipher.
func (c *Client) buildSignRequest(req ports.SignRequest) (signRequestDTO, error) {
	encrypted := func(value string) (string, error) {
		if value == "" {
			return "", nil
		}
		return c.cipher.encrypt(value)
	}

	var dto signRequestDTO
	var err error

	if dto.ReceiverName, err = encrypted(req.Signer.Name); err != nil {
		return signRequestDTO{}, err
	}
	if dto.ReceiverHP, err = encrypted(req.Signer.Phone); err != nil {
		return signRequestDTO{}, err
	}
	if dto.ReceiverBirthday, err = encrypted(req.Signer.Birthday); err != nil {
		return signRequestDTO{}, err
	}
	if dto.Token, err = encrypted(req.Token); err != nil {
		return signRequestDTO{}, err
	}
	dto.TokenType = tokenTypeHash
	dto.ExpireIn = int(c.signingWindow / time.Second)

	switch req.Vendor {
	case cert.VendorKakao:
		dto.SignTitle = req.Title
		if dto.ExtraMessage, err = encrypted(req.Message); err != nil {
			return signRequestDTO{}, err
		}
	case cert.VendorNaver:
		dto.CallCenterNum = c.callCenterNum
		dto.ReqTitle = req.Title
		if dto.ReqMessage, err = encrypted(req.Message); err != nil {
			return signRequestDTO{}, err
		}
	case cert.VendorPass:
		if req.OriginalURL == "" {
			return signRequestDTO{}, errs.NewValueIsRequiredError("originalURL")
		}
		dto.CallCenterNum = c.callCenterNum
		if dto.ReqMessage, err = encrypted(req.Message); err != nil {
			return signRequestDTO{}, err
		}
		dto.OriginalURL = req.OriginalURL
		dto.OriginalTypeCode = passOriginalTypeCode
		dto.OriginalFormatCode = passOriginalFormatCode
	default:
		return signRequestDTO{}, errs.NewValueIsInvalidError("vendor")
	}

	return dto, nil
}

// pollStatus checks the attempt state every poll interval until it leaves
// standby or the signing window lapses. The last seen outcome code is
// returned either way.
func (c *Client) pollStatus(ctx context.Context, clientCode string, vendor cert.Vendor, receiptID string) (int, error) {
	path := fmt.Sprintf("/%s/Sign/%s/%s", vendor, clientCode, receiptID)
	deadline := c.clock.Now().Add(c.signingWindow)

	for {
		var status signStatusDTO
		if err := c.call(ctx, http.MethodGet, path, nil, &status); err != nil {
			return 0, err
		}
		if status.State != 0 || !c.clock.Now().Before(deadline) {
			return status.State, nil
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) verify(ctx context.Context, clientCode, receiptID string, req ports.SignRequest) (cert.Result, error) {
	path := fmt.Sprintf("/%s/Sign/%s/%s/Verify", req.Vendor, clientCode, receiptID)

	var dto verifyResultDTO
	var err error

	if req.Vendor == cert.VendorPass {
		// PASS re-checks the signer identity at verification time.
		var body verifyRequestDTO
		if body.ReceiverName, err = c.cipher.encrypt(req.Signer.Name); err != nil {
			return cert.Result{}, err
		}
		if body.ReceiverHP, err = c.cipher.encrypt(req.Signer.Phone); err != nil {
			return cert.Result{}, err
		}
		err = c.call(ctx, http.MethodPost, path, body, &dto)
	} else {
		err = c.call(ctx, http.MethodGet, path, nil, &dto)
	}
	if err != nil {
		return cert.Result{}, err
	}

	signedTime := c.clock.Now()
	if dto.SignedDT != "" {
		parsed, parseErr := time.Parse(time.RFC3339, dto.SignedDT)
		if parseErr != nil {
			return cert.Result{}, fmt.Errorf("malformed signedDT %q: %w", dto.SignedDT, parseErr)
		}
		signedTime = parsed
	}

	return cert.NewResult(dto.ReceiptID, dto.SignedData, dto.CI, signedTime)
}

// call issues one signed gateway request and decodes the JSON answer.
// Non-2xx answers are decoded as the vendor's error envelope.
func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	var err error
	if body != nil {
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	date := c.clock.Now().UTC().Format(time.RFC3339)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-bc-date", date)
	httpReq.Header.Set("x-bc-linkid", c.linkID)
	httpReq.Header.Set("Authorization",
		"BAROCERT "+requestSignature(c.secret, method, path, date, payload))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var vendorErr errorDTO
		if jsonErr := json.Unmarshal(raw, &vendorErr); jsonErr == nil && vendorErr.Message != "" {
			return vendorErr
		}
		return fmt.Errorf("vendor answered %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}
