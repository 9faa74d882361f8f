package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/config"
)

func testConfig(baseURL string) config.CloudinaryConfig {
	return config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "secret456",
		BaseURL:   baseURL,
	}
}

func TestUploadSendsSignedDataURI(t *testing.T) {
	fileBytes := []byte("fake-image-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/demo/auto/upload", r.URL.Path)

		require.NoError(t, r.ParseForm())

		file := r.PostFormValue("file")
		prefix := "data:image/png;base64,"
		require.True(t, strings.HasPrefix(file, prefix), "file must be a data URI")
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(file, prefix))
		require.NoError(t, err)
		assert.Equal(t, fileBytes, decoded)

		assert.Equal(t, "key123", r.PostFormValue("api_key"))

		publicID := r.PostFormValue("public_id")
		timestamp := r.PostFormValue("timestamp")
		assert.NotEmpty(t, publicID)
		assert.NotEmpty(t, timestamp)

		expectedSig := fmt.Sprintf("%x", sha1.Sum([]byte(
			fmt.Sprintf("public_id=%s&timestamp=%ssecret456", publicID, timestamp),
		)))
		assert.Equal(t, expectedSig, r.PostFormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"public_id":%q,"url":"http://res.cloudinary.com/demo/img.png","secure_url":"https://res.cloudinary.com/demo/img.png"}`, publicID)
	}))
	defer server.Close()

	client := NewCloudinaryClient(testConfig(server.URL))

	result, err := client.Upload(context.Background(), fileBytes, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/img.png", result.SecureURL)
}

func TestUploadPrefixesFolderOnPublicID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.True(t, strings.HasPrefix(r.PostFormValue("public_id"), "listings/"))
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/demo/listings/img.png"}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Folder = "listings"
	client := NewCloudinaryClient(cfg)

	_, err := client.Upload(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)
}

func TestUploadProviderErrorFailsUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid image file"}}`)
	}))
	defer server.Close()

	client := NewCloudinaryClient(testConfig(server.URL))

	_, err := client.Upload(context.Background(), []byte("broken"), "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestUploadUnreachableProviderFailsUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewCloudinaryClient(testConfig(server.URL))

	_, err := client.Upload(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	client := NewCloudinaryClient(testConfig("http://unused.invalid"))

	_, err := client.Upload(context.Background(), nil, "image/png")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadMissingSecureURLFailsUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewCloudinaryClient(testConfig(server.URL))

	_, err := client.Upload(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrUploadFailed)
}
