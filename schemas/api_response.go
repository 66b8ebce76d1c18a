package schemas

type ApiResponse struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
