package schemas

type WorkspaceInput struct {
	Name        string `json:"name" validate:"required"`
	OwnerEmail  string `json:"ownerEmail" validate:"required,email"`
	CompanyName string `json:"companyName,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type WorkspaceResult struct {
	WorkspaceID string `json:"workspaceId,omitempty"`
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
}

// WorkspaceError é devolvido ao navegador para que ele possa oferecer "tentar novamente".
type WorkspaceError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Status    int    `json:"status,omitempty"`
	Retryable bool   `json:"retryable"`
}
