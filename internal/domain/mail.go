package domain

const (
	MailTypeCreateUser         = "create_user"
	MailTypeSchedulesGenerated = "schedules_generated"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SchedulesGeneratedMailData struct {
	FullName    string `json:"fullName"`
	CatalogName string `json:"catalogName"`
	Count       int    `json:"count"`
	Truncated   bool   `json:"truncated"`
	Tables      string `json:"tables"`
}
