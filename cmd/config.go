package cmd

// Config carries the runtime settings for the service. All values come from
// the environment; see cmd/app for the variable names.
type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	CartMaxAgeHours int
	PaymentLimit    string
}
