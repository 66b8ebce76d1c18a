package schemas

type Preferences struct {
	SelectedFunnelID string `json:"selectedFunnelId,omitempty"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	Theme            string `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
}
