package backend

import (
	"context"
	"dashboard/schemas"
	"encoding/base64"
	"fmt"
	"net/http"
)

type SystemConfig struct {
	client *Client
}

func NewSystemConfig(client *Client) *SystemConfig {
	return &SystemConfig{client: client}
}

func (s *SystemConfig) Get(ctx context.Context) (*schemas.SystemConfig, error) {
	config := &schemas.SystemConfig{}
	if err := s.client.Do(ctx, http.MethodGet, "/system-config", nil, config); err != nil {
		return nil, err
	}
	return config, nil
}

func (s *SystemConfig) Save(ctx context.Context, config schemas.SystemConfig) (*schemas.SystemConfig, error) {
	saved := &schemas.SystemConfig{}
	if err := s.client.Do(ctx, http.MethodPut, "/system-config", config, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

type uploadResult struct {
	URL string `json:"url"`
}

// UploadImage envia a imagem como data URI em base64 e devolve a URL pública.
func (s *SystemConfig) UploadImage(ctx context.Context, field string, image schemas.ImageUpload) (string, error) {
	body := map[string]string{
		"field":    field,
		"fileName": image.FileName,
		"data":     fmt.Sprintf("data:%s;base64,%s", image.ContentType, base64.StdEncoding.EncodeToString(image.Content)),
	}
	result := uploadResult{}
	if err := s.client.Do(ctx, http.MethodPost, "/system-config/upload", body, &result); err != nil {
		return "", err
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload de %s sem url na resposta", field)
	}
	return result.URL, nil
}
