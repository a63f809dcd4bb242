package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	liveURL    = "https://api.africastalking.com/version1/messaging"
	sandboxURL = "https://api.sandbox.africastalking.com/version1/messaging"
)

// 送信結果。ゲートウェイが失敗を返してもerrorにはせず、Statusで伝える。
type Result struct {
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Africa's Talking のレスポンス
type atResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Status    string `json:"status"`
			MessageID string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Africa's Talking SMSゲートウェイのクライアント。
type Client struct {
	Username string
	APIKey   string
	SenderID string
	BaseURL  string
	HTTP     *http.Client
}

// DI。usernameが"sandbox"ならサンドボックスに向ける。
func NewClient(username, apiKey, senderID string) *Client {
	base := liveURL
	if username == "sandbox" {
		base = sandboxURL
	}

	return &Client{
		Username: username,
		APIKey:   apiKey,
		SenderID: senderID,
		BaseURL:  base,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Sendは1件送信する。
// ゲートウェイのHTTPエラーや受信者単位の失敗は Result.Status="failed" で返し、
// ネットワーク到達不能だけをerrorとして返す。
func (c *Client) Send(ctx context.Context, phoneNumber, message string) (*Result, error) {
	to := normalizeInternational(phoneNumber)

	form := url.Values{}
	form.Set("username", c.Username)
	form.Set("to", to)
	form.Set("message", message)
	if c.SenderID != "" {
		form.Set("from", c.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apiKey", c.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 200/201以外は失敗扱い
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &Result{
			Status: "failed",
			Error:  fmt.Sprintf("HTTP %d", resp.StatusCode),
		}, nil
	}

	var parsed atResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &Result{Status: "failed", Error: "invalid gateway response"}, nil
	}

	recipients := parsed.SMSMessageData.Recipients
	if len(recipients) == 0 {
		return &Result{Status: "failed"}, nil
	}

	return &Result{
		Status:    recipients[0].Status,
		MessageID: recipients[0].MessageID,
	}, nil
}

// ゲートウェイには国際形式（+254）で渡す。
func normalizeInternational(phone string) string {
	v := strings.TrimSpace(phone)

	if strings.HasPrefix(v, "+") {
		return v
	}
	if strings.HasPrefix(v, "0") {
		return "+254" + v[1:]
	}
	if strings.HasPrefix(v, "254") {
		return "+" + v
	}
	return v
}
