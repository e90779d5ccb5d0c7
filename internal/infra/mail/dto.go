package mail

type PaymentApprovedEmailData struct {
	Name   string
	Amount string
	UID    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
