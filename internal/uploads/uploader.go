package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Uploader performs the two-hop cover upload: fetch a signed credential
// from the dashboard API with a bearer identity token, then POST the
// file straight to the image host. Neither hop retries.
type Uploader struct {
	client        *http.Client
	credentialURL string
	token         string
}

func NewUploader(credentialURL, token string) *Uploader {
	return &Uploader{
		client:        &http.Client{Timeout: 30 * time.Second},
		credentialURL: credentialURL,
		token:         token,
	}
}

// Upload pushes one file and returns the hosted asset URL. The caller
// stores the URL into the form's coverPhoto field; nothing is persisted
// here.
func (u *Uploader) Upload(ctx context.Context, folder, filename string, file io.Reader) (string, error) {
	cred, err := u.fetchCredential(ctx, folder)
	if err != nil {
		return "", fmt.Errorf("fetch upload credential: %w", err)
	}

	url, err := u.push(ctx, cred, filename, file)
	if err != nil {
		return "", fmt.Errorf("upload to image host: %w", err)
	}
	return url, nil
}

func (u *Uploader) fetchCredential(ctx context.Context, folder string) (*Credential, error) {
	body, err := json.Marshal(map[string]string{"folder": folder})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.credentialURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+u.token)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("credential endpoint returned %d", resp.StatusCode)
	}

	var cred Credential
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (u *Uploader) push(ctx context.Context, cred *Credential, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}

	fields := map[string]string{
		"api_key":   cred.APIKey,
		"timestamp": strconv.FormatInt(cred.Timestamp, 10),
		"signature": cred.Signature,
		"folder":    cred.Folder,
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cred.UploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("image host returned no secure_url (status %d)", resp.StatusCode)
	}
	return result.SecureURL, nil
}
