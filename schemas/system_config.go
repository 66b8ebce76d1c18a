package schemas

import "time"

type SystemConfig struct {
	ID              string    `json:"id,omitempty"`
	AppName         string    `json:"appName"`
	PrimaryColor    string    `json:"primaryColor,omitempty"`
	SupportEmail    string    `json:"supportEmail,omitempty"`
	Logo            string    `json:"logo,omitempty"`
	Favicon         string    `json:"favicon,omitempty"`
	LoginBackground string    `json:"loginBackground,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ImageUpload chega do formulário com o conteúdo bruto da imagem.
type ImageUpload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

type SystemConfigInput struct {
	Config          SystemConfig `json:"config"`
	Logo            *ImageUpload `json:"logoUpload,omitempty"`
	Favicon         *ImageUpload `json:"faviconUpload,omitempty"`
	LoginBackground *ImageUpload `json:"loginBackgroundUpload,omitempty"`
}
