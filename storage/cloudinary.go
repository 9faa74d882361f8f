package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/config"
)

// ErrUploadFailed is returned when Cloudinary rejects an upload or cannot be
// reached at all.
var ErrUploadFailed = errors.New("cloudinary upload failed")

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

type UploadResult struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// CloudinaryClient performs signed uploads against the Cloudinary upload API.
// The file is sent as a data URI, which is the wire format the API expects for
// in-memory content.
type CloudinaryClient struct {
	cfg        config.CloudinaryConfig
	httpClient *http.Client
	baseURL    string
}

func NewCloudinaryClient(cfg config.CloudinaryConfig) *CloudinaryClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &CloudinaryClient{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *CloudinaryClient) Upload(ctx context.Context, data []byte, contentType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUploadFailed)
	}

	publicID := uuid.New().String()
	if c.cfg.Folder != "" {
		publicID = c.cfg.Folder + "/" + publicID
	}
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	// Signature over the signed params sorted by name, followed by the secret.
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(
		fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.cfg.APISecret),
	)))

	form := url.Values{}
	form.Add("file", dataURI)
	form.Add("api_key", c.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := fmt.Sprintf("%s/%s/auto/upload", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUploadFailed, err)
	}

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUploadFailed, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, res.StatusCode)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUploadFailed, err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("%w: response missing secure_url", ErrUploadFailed)
	}
	return &result, nil
}
