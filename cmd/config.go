package cmd

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	PaymentGatewayURL   string
	PaymentGatewayKey   string
	PatientDirectoryURL string
	EmailServiceURL     string
	EmailAPIKey         string
	EmailSender         string
	SMSServiceURL       string
	SMSAPIKey           string
	SMSSender           string
	WebhookURL          string
	WebhookToken        string
	OpsContactName      string
	OpsContactEmail     string
	StaleRequestAfter   string
}
