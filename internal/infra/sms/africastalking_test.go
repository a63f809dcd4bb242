package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	c := NewClient("sandbox", "test-api-key", "TESTSENDER")
	c.BaseURL = baseURL
	return c
}

func TestClient_Send_Success(t *testing.T) {
	var gotForm map[string]string
	var gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"username": r.PostFormValue("username"),
			"to":       r.PostFormValue("to"),
			"message":  r.PostFormValue("message"),
			"from":     r.PostFormValue("from"),
		}
		gotAPIKey = r.Header.Get("apiKey")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"SMSMessageData":{"Recipients":[{"status":"Success","messageId":"ATXid_123"}]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	result, err := c.Send(context.Background(), "0712345678", "hello")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Success", result.Status)
	assert.Equal(t, "ATXid_123", result.MessageID)

	//ゲートウェイには国際形式で渡る
	assert.Equal(t, "+254712345678", gotForm["to"])
	assert.Equal(t, "sandbox", gotForm["username"])
	assert.Equal(t, "hello", gotForm["message"])
	assert.Equal(t, "TESTSENDER", gotForm["from"])
	assert.Equal(t, "test-api-key", gotAPIKey)
}

func TestClient_Send_RecipientFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"SMSMessageData":{"Recipients":[{"status":"InvalidPhoneNumber","messageId":""}]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	result, err := c.Send(context.Background(), "0712345678", "hello")
	require.NoError(t, err)
	assert.Equal(t, "InvalidPhoneNumber", result.Status)
}

func TestClient_Send_EmptyRecipients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"SMSMessageData":{"Recipients":[]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	result, err := c.Send(context.Background(), "0712345678", "hello")
	require.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
}

func TestClient_Send_GatewayHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	//HTTPレベルの失敗はerrorではなくStatusで返す
	result, err := c.Send(context.Background(), "0712345678", "hello")
	require.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Equal(t, "HTTP 401", result.Error)
}

func TestClient_Send_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	result, err := c.Send(context.Background(), "0712345678", "hello")
	require.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
}

func TestClient_Send_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 即クローズして到達不能にする

	c := testClient(srv.URL)

	result, err := c.Send(context.Background(), "0712345678", "hello")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestNewClient_SandboxURL(t *testing.T) {
	assert.Equal(t, sandboxURL, NewClient("sandbox", "k", "").BaseURL)
	assert.Equal(t, liveURL, NewClient("myapp", "k", "").BaseURL)
}

func TestNormalizeInternational(t *testing.T) {
	cases := map[string]string{
		"0712345678":    "+254712345678",
		"+254712345678": "+254712345678",
		"254712345678":  "+254712345678",
		"712345678":     "712345678",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeInternational(in), "input: %s", in)
	}
}
