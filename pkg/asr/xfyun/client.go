// Package xfyun implements asr.Transcriber against the iFlytek long-form
// speech transcription API (LFASR). The flow is upload, then poll until the
// order reaches terminal status.
package xfyun

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ai-deckgen-be/pkg/asr"
)

const (
	defaultHost  = "https://raasr.xfyun.cn/v2/api"
	pollInterval = 5 * time.Second

	statusProcessing = 3
	statusDone       = 4

	codeOK = "000000"
)

type Client struct {
	appID     string
	secretKey string
	host      string
	http      *http.Client
}

var _ asr.Transcriber = (*Client)(nil)

func NewClient(appID, secretKey, host string, timeout time.Duration) *Client {
	if host == "" {
		host = defaultHost
	}
	return &Client{
		appID:     appID,
		secretKey: secretKey,
		host:      strings.TrimRight(host, "/"),
		http:      &http.Client{Timeout: timeout},
	}
}

// sign computes base64(HMAC-SHA1(secret, hex(MD5(appid+ts)))), the LFASR
// request signature.
func (c *Client) sign(ts string) string {
	sum := md5.Sum([]byte(c.appID + ts))
	digest := hex.EncodeToString(sum[:])
	mac := hmac.New(sha1.New, []byte(c.secretKey))
	mac.Write([]byte(digest))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type apiResponse struct {
	Code     string          `json:"code"`
	DescInfo string          `json:"descInfo"`
	Content  json.RawMessage `json:"content"`
}

type uploadContent struct {
	OrderID string `json:"orderId"`
}

type resultContent struct {
	OrderInfo struct {
		Status int `json:"status"`
	} `json:"orderInfo"`
	OrderResult string `json:"orderResult"`
}

func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	signa := c.sign(ts)

	orderID, err := c.upload(ctx, audioPath, ts, signa)
	if err != nil {
		return "", err
	}

	result, err := c.pollResult(ctx, orderID, ts, signa)
	if err != nil {
		return "", err
	}

	segments, err := parseOrderResult(result)
	if err != nil {
		return "", err
	}
	return FormatDialogue(segments), nil
}

func (c *Client) upload(ctx context.Context, audioPath, ts, signa string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("appId", c.appID)
	params.Set("signa", signa)
	params.Set("ts", ts)
	params.Set("fileSize", strconv.FormatInt(info.Size(), 10))
	params.Set("fileName", filepath.Base(audioPath))
	params.Set("duration", "200")
	params.Set("roleType", "1") // speaker separation on

	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	resp, err := c.post(ctx, "/upload?"+params.Encode(), f)
	if err != nil {
		return "", err
	}
	if resp.Code != codeOK {
		return "", fmt.Errorf("xfyun upload rejected: %s (%s)", resp.DescInfo, resp.Code)
	}

	var content uploadContent
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		return "", fmt.Errorf("xfyun upload response: %w", err)
	}
	if content.OrderID == "" {
		return "", fmt.Errorf("xfyun upload response missing orderId")
	}
	return content.OrderID, nil
}

func (c *Client) pollResult(ctx context.Context, orderID, ts, signa string) (*resultContent, error) {
	params := url.Values{}
	params.Set("appId", c.appID)
	params.Set("signa", signa)
	params.Set("ts", ts)
	params.Set("orderId", orderID)
	params.Set("resultType", "transfer,predict")

	for {
		resp, err := c.post(ctx, "/getResult?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		if resp.Code != codeOK {
			return nil, fmt.Errorf("xfyun result query failed: %s (%s)", resp.DescInfo, resp.Code)
		}

		var content resultContent
		if err := json.Unmarshal(resp.Content, &content); err != nil {
			return nil, fmt.Errorf("xfyun result response: %w", err)
		}

		switch content.OrderInfo.Status {
		case statusDone:
			return &content, nil
		case statusProcessing:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pollInterval):
			}
		default:
			return nil, fmt.Errorf("xfyun transcription failed with status %d", content.OrderInfo.Status)
		}
	}
}

func (c *Client) post(ctx context.Context, path string, body io.Reader) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("xfyun response not JSON: %w", err)
	}
	return &resp, nil
}
