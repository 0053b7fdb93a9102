package mail

type NewLeadEmailData struct {
	FullName     string
	Email        string
	LinkedIn     string
	Country      string
	Visas        string
	Resume       string
	Message      string
	SubmittedAt  string
	DashboardURL string
}

type EmailSender struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	To           string
	DashboardURL string

	dialer dialer
}
